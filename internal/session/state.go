package session

import (
	"errors"
	"time"

	"github.com/abhisek/cosmath/internal/curriculum"
	"github.com/abhisek/cosmath/internal/scoring"
	"github.com/google/uuid"
)

var (
	// ErrSessionFinished is returned when submitting after the last problem.
	ErrSessionFinished = errors.New("session already finished")

	// ErrIncomplete is returned when completing before every problem is
	// answered.
	ErrIncomplete = errors.New("session has unanswered problems")

	// ErrAlreadyCompleted is returned when a completion result was already
	// built for the session.
	ErrAlreadyCompleted = errors.New("session already completed")

	// ErrEmptyLesson is returned when starting a lesson with no problems.
	ErrEmptyLesson = errors.New("lesson has no problems")
)

// Phase is the lifecycle stage of a session.
type Phase int

const (
	PhaseActive    Phase = iota // Serving problems
	PhaseFinished               // Every problem answered correctly; awaiting completion
	PhaseCompleted              // Completion result built
)

// Option configures a Session.
type Option func(*Session)

// WithClock sets the time source. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithID sets the session ID. Defaults to a random UUID.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// Session tracks one learner playing one lesson. It is owned by a single
// caller and is not safe for concurrent use. Abandoning a session simply
// means dropping it: nothing is produced and nothing is persisted.
type Session struct {
	id         string
	lesson     curriculum.Lesson
	score      int
	attempts   []int
	index      int
	phase      Phase
	startedAt  time.Time
	finishedAt time.Time
	now        func() time.Time
}

// New starts a session for lesson.
func New(lesson curriculum.Lesson, opts ...Option) (*Session, error) {
	if lesson.ProblemCount() == 0 {
		return nil, ErrEmptyLesson
	}
	s := &Session{
		lesson:   lesson,
		score:    scoring.MaxScore,
		attempts: make([]int, lesson.ProblemCount()),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.New().String()
	}
	s.startedAt = s.now()
	return s, nil
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Lesson returns the lesson being played.
func (s *Session) Lesson() curriculum.Lesson { return s.lesson }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Index returns the index of the current problem.
func (s *Session) Index() int { return s.index }

// Phase returns the lifecycle stage.
func (s *Session) Phase() Phase { return s.phase }

// StartedAt returns when the session began.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Current returns the problem awaiting an answer. ok is false once every
// problem has been answered.
func (s *Session) Current() (p curriculum.Problem, ok bool) {
	if s.phase != PhaseActive {
		return curriculum.Problem{}, false
	}
	return s.lesson.Problems[s.index], true
}

// Attempts returns a copy of the per-problem submission counts.
func (s *Session) Attempts() []int {
	return append([]int(nil), s.attempts...)
}

// Elapsed returns time spent so far, frozen once the last problem is
// answered.
func (s *Session) Elapsed() time.Duration {
	if s.phase != PhaseActive {
		return s.finishedAt.Sub(s.startedAt)
	}
	return s.now().Sub(s.startedAt)
}

// ProjectedXP is the lesson XP the current score would earn.
func (s *Session) ProjectedXP() int {
	return scoring.XPEarned(s.score, s.lesson.XPReward)
}
