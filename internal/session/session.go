package session

import (
	"github.com/abhisek/cosmath/internal/curriculum"
	"github.com/abhisek/cosmath/internal/scoring"
)

// SubmissionResult is returned synchronously after every submission so the
// UI can update its score and XP counters.
type SubmissionResult struct {
	ProblemIndex  int
	Attempt       int
	Correct       bool
	PartialCredit int
	Deduction     int
	Score         int

	// XPDelta is the incremental XP shown for a correct answer.
	XPDelta int

	// ProjectedXP is the lesson XP the current score would earn.
	ProjectedXP int

	// Expected is the answer to the problem that was just submitted.
	Expected curriculum.Answer

	// Advanced is true when the session moved to the next problem.
	Advanced bool

	// Done is true when every problem has been answered.
	Done bool
}

// Submit records an answer for the current problem. The attempt counter is
// incremented on every submission and every non-exact answer costs points.
// A correct answer advances to the next problem; a wrong one stays.
func (s *Session) Submit(answer curriculum.Answer) (SubmissionResult, error) {
	p, ok := s.Current()
	if !ok {
		return SubmissionResult{}, ErrSessionFinished
	}

	idx := s.index
	s.attempts[idx]++

	v := scoring.Validate(answer, p.Answer)
	score, deduction := scoring.ApplyScore(s.score, v)
	s.score = score

	res := SubmissionResult{
		ProblemIndex:  idx,
		Attempt:       s.attempts[idx],
		Correct:       v.IsCorrect,
		PartialCredit: v.PartialCredit,
		Deduction:     deduction,
		Score:         score,
		ProjectedXP:   s.ProjectedXP(),
		Expected:      p.Answer,
	}

	if v.IsCorrect {
		res.XPDelta = perProblemXP(s.lesson)
		res.Advanced = true
		s.index++
		if s.index >= s.lesson.ProblemCount() {
			s.phase = PhaseFinished
			s.finishedAt = s.now()
			res.Done = true
		}
	}
	return res, nil
}

// SubmitText records free-form input from the UI.
func (s *Session) SubmitText(input string) (SubmissionResult, error) {
	return s.Submit(curriculum.Text(input))
}

// perProblemXP is ceil(xpReward / problemCount).
func perProblemXP(l curriculum.Lesson) int {
	n := l.ProblemCount()
	if n == 0 {
		return 0
	}
	return (l.XPReward + n - 1) / n
}
