package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/cosmath/internal/achievements"
	"github.com/abhisek/cosmath/internal/curriculum"
	"github.com/abhisek/cosmath/internal/session"
)

var (
	// ErrLearnerNotFound is returned by a Repo when no learner exists.
	ErrLearnerNotFound = errors.New("learner not found")

	// ErrNotPlayable is returned when starting a lesson whose prerequisites
	// are not completed.
	ErrNotPlayable = errors.New("lesson is locked")
)

// Repo persists learners. Apply must merge a delta atomically: increments
// are relative, the lesson record is upserted by lesson ID, and unlocks are
// inserted only when absent.
type Repo interface {
	Load(ctx context.Context, learnerID string) (*Learner, error)
	Ensure(ctx context.Context, learnerID, displayName string) (*Learner, error)
	Apply(ctx context.Context, d Delta) error
	Reset(ctx context.Context, learnerID string) error
}

// CompletionLog receives finished lessons for history. Failures are logged
// and otherwise ignored.
type CompletionLog interface {
	AppendCompletion(ctx context.Context, learnerID string, r session.CompletionResult) error
}

// ActivityTracker remembers which lesson a learner is playing.
type ActivityTracker interface {
	Start(ctx context.Context, learnerID, lessonID string) error
	Clear(ctx context.Context, learnerID string) error
}

// Service wires sessions to persistence.
type Service struct {
	repo     Repo
	catalog  *curriculum.Catalog
	eval     *achievements.Evaluator
	log      CompletionLog
	activity ActivityTracker
	logger   *slog.Logger
	now      func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithCompletionLog records every completion in l.
func WithCompletionLog(l CompletionLog) ServiceOption {
	return func(s *Service) { s.log = l }
}

// WithActivityTracker tracks the active lesson in t.
func WithActivityTracker(t ActivityTracker) ServiceOption {
	return func(s *Service) { s.activity = t }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

// WithNow sets the clock passed to new sessions.
func WithNow(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates a progress service.
func NewService(repo Repo, catalog *curriculum.Catalog, table *achievements.Table, opts ...ServiceOption) *Service {
	s := &Service{
		repo:    repo,
		catalog: catalog,
		eval:    achievements.NewEvaluator(table, catalog),
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the lesson table.
func (s *Service) Catalog() *curriculum.Catalog { return s.catalog }

// Achievements returns the achievement table.
func (s *Service) Achievements() *achievements.Table { return s.eval.Table() }

// Learner loads a learner, creating it on first use.
func (s *Service) Learner(ctx context.Context, learnerID, displayName string) (*Learner, error) {
	l, err := s.repo.Ensure(ctx, learnerID, displayName)
	if err != nil {
		return nil, fmt.Errorf("load learner: %w", err)
	}
	return l, nil
}

// Start checks lesson gating and begins a session.
func (s *Service) Start(ctx context.Context, learnerID, lessonID string) (*session.Session, error) {
	lesson, err := s.catalog.Get(lessonID)
	if err != nil {
		return nil, err
	}
	l, err := s.repo.Load(ctx, learnerID)
	if err != nil && !errors.Is(err, ErrLearnerNotFound) {
		return nil, fmt.Errorf("load learner: %w", err)
	}
	completed := map[string]bool{}
	if l != nil {
		completed = l.Completed()
	}
	if !s.catalog.IsPlayable(lessonID, completed) {
		return nil, fmt.Errorf("%w: %s", ErrNotPlayable, lessonID)
	}

	sess, err := session.New(lesson, session.WithClock(s.now))
	if err != nil {
		return nil, err
	}
	if s.activity != nil {
		if err := s.activity.Start(ctx, learnerID, lessonID); err != nil {
			s.logger.Warn("track active lesson", "learner", learnerID, "lesson", lessonID, "err", err)
		}
	}
	s.logger.Debug("lesson started", "learner", learnerID, "lesson", lessonID, "session", sess.ID())
	return sess, nil
}

// Finish builds the completion result against the learner's latest
// progress and persists it. On a persistence error the result is still
// returned so the caller can retry with Persist.
func (s *Service) Finish(ctx context.Context, learnerID string, sess *session.Session) (session.CompletionResult, error) {
	var hist session.History
	l, err := s.repo.Load(ctx, learnerID)
	switch {
	case err == nil:
		hist = l.History()
	case errors.Is(err, ErrLearnerNotFound):
	default:
		return session.CompletionResult{}, fmt.Errorf("load learner: %w", err)
	}

	res, err := sess.Complete(s.eval, hist)
	if err != nil {
		return session.CompletionResult{}, err
	}
	return res, s.Persist(ctx, learnerID, res)
}

// Persist merges a completion result into stored progress.
func (s *Service) Persist(ctx context.Context, learnerID string, res session.CompletionResult) error {
	lesson, err := s.catalog.Get(res.LessonID)
	if err != nil {
		return err
	}
	d := NewDelta(learnerID, res, lesson.ProblemCount(), s.eval.Table())
	if err := s.repo.Apply(ctx, d); err != nil {
		return fmt.Errorf("apply progress: %w", err)
	}
	s.logger.Info("lesson completed",
		"learner", learnerID,
		"lesson", res.LessonID,
		"score", res.FinalScore,
		"xp", res.TotalXP(),
		"achievements", res.UnlockedAchievementIDs,
	)

	if s.log != nil {
		if err := s.log.AppendCompletion(ctx, learnerID, res); err != nil {
			s.logger.Warn("record completion event", "err", err)
		}
	}
	s.clearActivity(ctx, learnerID)
	return nil
}

// Abandon drops an unfinished session. Nothing is persisted.
func (s *Service) Abandon(ctx context.Context, learnerID string, sess *session.Session) {
	s.logger.Debug("lesson abandoned", "learner", learnerID, "lesson", sess.Lesson().ID, "session", sess.ID())
	s.clearActivity(ctx, learnerID)
}

// Reset deletes a learner's progress.
func (s *Service) Reset(ctx context.Context, learnerID string) error {
	if err := s.repo.Reset(ctx, learnerID); err != nil {
		return fmt.Errorf("reset learner: %w", err)
	}
	s.clearActivity(ctx, learnerID)
	return nil
}

func (s *Service) clearActivity(ctx context.Context, learnerID string) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Clear(ctx, learnerID); err != nil {
		s.logger.Warn("clear active lesson", "learner", learnerID, "err", err)
	}
}
