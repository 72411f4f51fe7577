package session

import (
	"time"

	"github.com/abhisek/cosmath/internal/achievements"
	"github.com/abhisek/cosmath/internal/curriculum"
	"github.com/abhisek/cosmath/internal/scoring"
)

// History is the read-only snapshot of a learner's prior progress that the
// achievement evaluator needs. Nil maps are treated as empty.
type History struct {
	// Completed maps lesson IDs to their recorded final score.
	Completed map[string]int

	// Unlocked holds achievement IDs already unlocked.
	Unlocked map[string]bool
}

// CompletionResult is the immutable record of a finished lesson. It is the
// only thing handed to persistence.
type CompletionResult struct {
	SessionID               string
	LessonID                string
	LessonTitle             string
	Topic                   curriculum.Topic
	FinalScore              int
	TimeTakenSeconds        int
	XPEarned                int
	BonusXPFromAchievements int
	AttemptsPerProblem      []int
	UnlockedAchievementIDs  []string
	CompletedAt             time.Time
}

// TotalXP is the lesson XP plus achievement bonuses.
func (r CompletionResult) TotalXP() int {
	return r.XPEarned + r.BonusXPFromAchievements
}

// TotalAttempts sums the per-problem submission counts.
func (r CompletionResult) TotalAttempts() int {
	total := 0
	for _, a := range r.AttemptsPerProblem {
		total += a
	}
	return total
}

// Complete evaluates achievements and builds the completion result. It may
// only be called once, after every problem has been answered.
func (s *Session) Complete(eval *achievements.Evaluator, h History) (CompletionResult, error) {
	switch s.phase {
	case PhaseActive:
		return CompletionResult{}, ErrIncomplete
	case PhaseCompleted:
		return CompletionResult{}, ErrAlreadyCompleted
	}

	elapsed := s.Elapsed()
	attempts := s.Attempts()

	unlocked := eval.Evaluate(achievements.Input{
		Lesson:     s.lesson,
		FinalScore: s.score,
		Attempts:   attempts,
		Elapsed:    elapsed,
		Completed:  h.Completed,
		Unlocked:   h.Unlocked,
	})

	s.phase = PhaseCompleted
	return CompletionResult{
		SessionID:               s.id,
		LessonID:                s.lesson.ID,
		LessonTitle:             s.lesson.Title,
		Topic:                   s.lesson.Topic,
		FinalScore:              s.score,
		TimeTakenSeconds:        int(elapsed / time.Second),
		XPEarned:                scoring.XPEarned(s.score, s.lesson.XPReward),
		BonusXPFromAchievements: eval.Table().BonusXP(unlocked),
		AttemptsPerProblem:      attempts,
		UnlockedAchievementIDs:  unlocked,
		CompletedAt:             s.finishedAt,
	}, nil
}
