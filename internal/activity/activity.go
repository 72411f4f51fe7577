// Package activity remembers which lesson each learner is currently playing
// so an interrupted lesson can be resumed.
package activity

import (
	"context"
	"time"
)

// DefaultTTL is how long an unfinished lesson stays resumable.
const DefaultTTL = 2 * time.Hour

// Entry is an in-progress lesson.
type Entry struct {
	LessonID  string    `json:"lessonId"`
	StartedAt time.Time `json:"startedAt"`
}

// Tracker records the active lesson per learner.
type Tracker interface {
	Start(ctx context.Context, learnerID, lessonID string) error
	Clear(ctx context.Context, learnerID string) error
	// Active reports the learner's active lesson. ok is false when there is
	// none or it has expired.
	Active(ctx context.Context, learnerID string) (e Entry, ok bool, err error)
}
