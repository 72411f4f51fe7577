package activity

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedis(client, time.Minute), mr
}

func TestTrackers(t *testing.T) {
	rt, _ := newRedis(t)
	trackers := map[string]Tracker{
		"memory": NewMemory(time.Minute),
		"redis":  rt,
	}
	for name, tr := range trackers {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, ok, err := tr.Active(ctx, "u1"); err != nil || ok {
				t.Fatalf("expected no active lesson, got ok=%v err=%v", ok, err)
			}

			if err := tr.Start(ctx, "u1", "alg2"); err != nil {
				t.Fatalf("start: %v", err)
			}
			e, ok, err := tr.Active(ctx, "u1")
			if err != nil || !ok {
				t.Fatalf("expected active lesson, got ok=%v err=%v", ok, err)
			}
			if e.LessonID != "alg2" {
				t.Errorf("lesson = %q, want alg2", e.LessonID)
			}

			if _, ok, _ := tr.Active(ctx, "u2"); ok {
				t.Error("learners must not share entries")
			}

			if err := tr.Clear(ctx, "u1"); err != nil {
				t.Fatalf("clear: %v", err)
			}
			if _, ok, _ := tr.Active(ctx, "u1"); ok {
				t.Error("expected entry to be cleared")
			}
		})
	}
}

func TestRedisKeyExpires(t *testing.T) {
	tr, mr := newRedis(t)
	ctx := context.Background()

	if err := tr.Start(ctx, "u1", "geo0"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !mr.Exists("cosmath:active:u1") {
		t.Fatal("expected key to be set")
	}
	if ttl := mr.TTL("cosmath:active:u1"); ttl != time.Minute {
		t.Errorf("ttl = %v, want 1m", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if _, ok, _ := tr.Active(ctx, "u1"); ok {
		t.Error("expected entry to expire")
	}
}

func TestMemoryExpires(t *testing.T) {
	m := NewMemory(time.Minute)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	_ = m.Start(ctx, "u1", "calc0")
	now = now.Add(59 * time.Second)
	if _, ok, _ := m.Active(ctx, "u1"); !ok {
		t.Fatal("expected entry before ttl")
	}
	now = now.Add(time.Second)
	if _, ok, _ := m.Active(ctx, "u1"); ok {
		t.Fatal("expected entry to expire at ttl")
	}
}
