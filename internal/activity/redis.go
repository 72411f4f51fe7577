package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores the active lesson under cosmath:active:<learner> with a TTL,
// so several terminals on one account see the same resume point.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewRedis returns a Redis tracker. A non-positive ttl uses DefaultTTL.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl, now: time.Now}
}

func (r *Redis) Start(ctx context.Context, learnerID, lessonID string) error {
	b, err := json.Marshal(Entry{LessonID: lessonID, StartedAt: r.now().UTC()})
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(learnerID), b, r.ttl).Err(); err != nil {
		return fmt.Errorf("set active lesson: %w", err)
	}
	return nil
}

func (r *Redis) Clear(ctx context.Context, learnerID string) error {
	if err := r.client.Del(ctx, r.key(learnerID)).Err(); err != nil {
		return fmt.Errorf("clear active lesson: %w", err)
	}
	return nil
}

func (r *Redis) Active(ctx context.Context, learnerID string) (Entry, bool, error) {
	raw, err := r.client.Get(ctx, r.key(learnerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("get active lesson: %w", err)
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, false, fmt.Errorf("decode active lesson: %w", err)
	}
	return e, true, nil
}

func (r *Redis) key(learnerID string) string {
	return "cosmath:active:" + learnerID
}
