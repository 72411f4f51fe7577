package activity

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process Tracker.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]Entry
}

// NewMemory returns a Memory tracker. A non-positive ttl uses DefaultTTL.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{ttl: ttl, now: time.Now, entries: make(map[string]Entry)}
}

func (m *Memory) Start(_ context.Context, learnerID, lessonID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[learnerID] = Entry{LessonID: lessonID, StartedAt: m.now()}
	return nil
}

func (m *Memory) Clear(_ context.Context, learnerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, learnerID)
	return nil
}

func (m *Memory) Active(_ context.Context, learnerID string) (Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[learnerID]
	if !ok {
		return Entry{}, false, nil
	}
	if m.now().Sub(e.StartedAt) >= m.ttl {
		delete(m.entries, learnerID)
		return Entry{}, false, nil
	}
	return e, true, nil
}
