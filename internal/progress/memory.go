package progress

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"
)

// MemoryRepo is an in-process Repo. Learners are deep-copied on the way in
// and out.
type MemoryRepo struct {
	mu       sync.Mutex
	learners map[string]*Learner
	now      func() time.Time
}

// NewMemoryRepo returns an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{learners: make(map[string]*Learner), now: time.Now}
}

func (r *MemoryRepo) Load(_ context.Context, learnerID string) (*Learner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.learners[learnerID]
	if !ok {
		return nil, ErrLearnerNotFound
	}
	return cloneLearner(l), nil
}

func (r *MemoryRepo) Ensure(_ context.Context, learnerID, displayName string) (*Learner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.learners[learnerID]
	if !ok {
		l = NewLearner(learnerID, displayName, r.now())
		r.learners[learnerID] = l
	}
	return cloneLearner(l), nil
}

func (r *MemoryRepo) Apply(_ context.Context, d Delta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.learners[d.LearnerID]
	if !ok {
		l = NewLearner(d.LearnerID, "", r.now())
		r.learners[d.LearnerID] = l
	}
	Apply(l, d)
	return nil
}

func (r *MemoryRepo) Reset(_ context.Context, learnerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.learners, learnerID)
	return nil
}

func cloneLearner(l *Learner) *Learner {
	c := *l
	c.Skills = maps.Clone(l.Skills)
	c.Achievements = maps.Clone(l.Achievements)
	c.LessonAttempts = maps.Clone(l.LessonAttempts)
	c.CompletedLessons = make(map[string]CompletedLesson, len(l.CompletedLessons))
	for k, v := range l.CompletedLessons {
		v.Achievements = slices.Clone(v.Achievements)
		c.CompletedLessons[k] = v
	}
	c.ensureMaps()
	return &c
}
