package session

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/abhisek/cosmath/internal/achievements"
	"github.com/abhisek/cosmath/internal/curriculum"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

// fiveProblemLesson mirrors the shape of the built-in beginner lessons.
func fiveProblemLesson() curriculum.Lesson {
	l, _ := curriculum.Default().Get("alg0")
	return l
}

func newEvaluator() *achievements.Evaluator {
	return achievements.NewEvaluator(achievements.DefaultTable(), curriculum.Default())
}

func answerAll(t *testing.T, s *Session, clock *fakeClock, step time.Duration) {
	t.Helper()
	for {
		p, ok := s.Current()
		if !ok {
			return
		}
		clock.Advance(step)
		if _, err := s.Submit(p.Answer); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
}

func TestNew_RejectsEmptyLesson(t *testing.T) {
	_, err := New(curriculum.Lesson{ID: "x"})
	if !errors.Is(err, ErrEmptyLesson) {
		t.Fatalf("expected ErrEmptyLesson, got %v", err)
	}
}

func TestNew_AssignsID(t *testing.T) {
	s, err := New(fiveProblemLesson())
	if err != nil {
		t.Fatal(err)
	}
	if s.ID() == "" {
		t.Fatal("expected a generated session ID")
	}
	fixed, _ := New(fiveProblemLesson(), WithID("sess-1"))
	if fixed.ID() != "sess-1" {
		t.Errorf("ID = %q, want sess-1", fixed.ID())
	}
}

func TestPerfectRun(t *testing.T) {
	clock := newClock()
	lesson := fiveProblemLesson()
	s, _ := New(lesson, WithClock(clock.Now))

	answerAll(t, s, clock, 30*time.Second)

	res, err := s.Complete(newEvaluator(), History{})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if res.FinalScore != 100 {
		t.Errorf("FinalScore = %d, want 100", res.FinalScore)
	}
	if res.XPEarned != 30 {
		t.Errorf("XPEarned = %d, want 30", res.XPEarned)
	}
	if !slices.Equal(res.AttemptsPerProblem, []int{1, 1, 1, 1, 1}) {
		t.Errorf("AttemptsPerProblem = %v", res.AttemptsPerProblem)
	}
	if !slices.Contains(res.UnlockedAchievementIDs, "firstTryMaster") {
		t.Errorf("expected firstTryMaster, got %v", res.UnlockedAchievementIDs)
	}
	if res.TimeTakenSeconds != 150 {
		t.Errorf("TimeTakenSeconds = %d, want 150", res.TimeTakenSeconds)
	}
	// stellarArithmeticMaster (30) + firstTryMaster (75)
	if res.BonusXPFromAchievements != 105 {
		t.Errorf("BonusXPFromAchievements = %d, want 105", res.BonusXPFromAchievements)
	}
	if res.TotalXP() != 135 {
		t.Errorf("TotalXP = %d, want 135", res.TotalXP())
	}
	if !res.CompletedAt.Equal(clock.Now()) {
		t.Errorf("CompletedAt = %v, want %v", res.CompletedAt, clock.Now())
	}
}

func TestCloseAnswerDeductsFive(t *testing.T) {
	lesson := curriculum.Lesson{
		ID: "t", Topic: curriculum.TopicAlgebra, XPReward: 50,
		Problems: []curriculum.Problem{{Question: "q", Answer: curriculum.Number(20)}},
	}
	s, _ := New(lesson)

	res, err := s.SubmitText("22")
	if err != nil {
		t.Fatal(err)
	}
	if res.Deduction != 5 || res.Score != 95 {
		t.Fatalf("got deduction=%d score=%d, want 5 and 95", res.Deduction, res.Score)
	}
	if res.Advanced || res.Correct {
		t.Fatal("a close answer must not advance")
	}
}

func TestWrongThenCloseThenRight(t *testing.T) {
	lesson := curriculum.Lesson{
		ID: "t", Topic: curriculum.TopicAlgebra, XPReward: 50,
		Problems: []curriculum.Problem{
			{Question: "q1", Answer: curriculum.Number(20)},
			{Question: "q2", Answer: curriculum.Number(3)},
		},
	}
	s, _ := New(lesson)

	steps := []struct {
		input     string
		wantScore int
		wantIndex int
	}{
		{"5", 90, 0},
		{"21", 85, 0},
		{"20", 85, 1},
		{"3", 85, 2},
	}
	for _, st := range steps {
		if _, err := s.SubmitText(st.input); err != nil {
			t.Fatalf("submit %q: %v", st.input, err)
		}
		if s.Score() != st.wantScore || s.Index() != st.wantIndex {
			t.Fatalf("after %q: score=%d index=%d, want %d/%d", st.input, s.Score(), s.Index(), st.wantScore, st.wantIndex)
		}
	}

	res, err := s.Complete(newEvaluator(), History{})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(res.AttemptsPerProblem, []int{3, 1}) {
		t.Errorf("AttemptsPerProblem = %v, want [3 1]", res.AttemptsPerProblem)
	}
	if res.XPEarned != 42 {
		t.Errorf("XPEarned = %d, want 42", res.XPEarned)
	}
}

func TestTwoWrongSecondClose(t *testing.T) {
	lesson := curriculum.Lesson{
		ID: "t", Topic: curriculum.TopicAlgebra, XPReward: 10,
		Problems: []curriculum.Problem{{Question: "q", Answer: curriculum.Number(100)}},
	}
	s, _ := New(lesson)
	s.Submit(curriculum.Number(50))
	s.Submit(curriculum.Number(108))

	if s.Score() != 85 {
		t.Fatalf("score = %d, want 85", s.Score())
	}
	if got := s.Attempts(); got[0] != 2 {
		t.Fatalf("attempts = %v, want 2 for problem 0", got)
	}
}

func TestScoreNeverIncreasesAndStaysInRange(t *testing.T) {
	s, _ := New(fiveProblemLesson())
	prev := s.Score()
	for range 40 {
		res, err := s.SubmitText("not a number")
		if err != nil {
			t.Fatal(err)
		}
		if res.Score < 0 || res.Score > 100 || res.Score > prev {
			t.Fatalf("score went from %d to %d", prev, res.Score)
		}
		prev = res.Score
	}
	if prev != 0 {
		t.Fatalf("expected score floor 0, got %d", prev)
	}
}

func TestXPDelta(t *testing.T) {
	l, _ := curriculum.Default().Get("calc1") // 60 XP over 3 problems
	s, _ := New(l)

	wrong, _ := s.SubmitText("-1")
	if wrong.XPDelta != 0 {
		t.Errorf("wrong answer XPDelta = %d, want 0", wrong.XPDelta)
	}
	right, _ := s.Submit(l.Problems[0].Answer)
	if right.XPDelta != 20 {
		t.Errorf("correct answer XPDelta = %d, want 20", right.XPDelta)
	}
	if right.ProjectedXP != 54 {
		t.Errorf("ProjectedXP = %d, want 54", right.ProjectedXP)
	}

	geo1, _ := curriculum.Default().Get("geo1") // 50 XP over 4 problems
	if got := perProblemXP(geo1); got != 13 {
		t.Errorf("perProblemXP(geo1) = %d, want 13", got)
	}
}

func TestSubmitAfterFinish(t *testing.T) {
	clock := newClock()
	s, _ := New(fiveProblemLesson(), WithClock(clock.Now))
	answerAll(t, s, clock, time.Second)

	if _, err := s.SubmitText("1"); !errors.Is(err, ErrSessionFinished) {
		t.Fatalf("expected ErrSessionFinished, got %v", err)
	}
	if s.Phase() != PhaseFinished {
		t.Fatalf("phase = %v, want finished", s.Phase())
	}
}

func TestCompleteGuards(t *testing.T) {
	clock := newClock()
	s, _ := New(fiveProblemLesson(), WithClock(clock.Now))

	if _, err := s.Complete(newEvaluator(), History{}); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}

	answerAll(t, s, clock, time.Second)
	if _, err := s.Complete(newEvaluator(), History{}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Complete(newEvaluator(), History{}); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
}

func TestElapsedFreezesAtFinish(t *testing.T) {
	clock := newClock()
	s, _ := New(fiveProblemLesson(), WithClock(clock.Now))
	answerAll(t, s, clock, 10*time.Second)

	clock.Advance(time.Hour)
	if got := s.Elapsed(); got != 50*time.Second {
		t.Fatalf("Elapsed = %v, want 50s", got)
	}
}

func TestComplete_RespectsHistory(t *testing.T) {
	clock := newClock()
	s, _ := New(fiveProblemLesson(), WithClock(clock.Now))
	answerAll(t, s, clock, time.Minute)

	res, err := s.Complete(newEvaluator(), History{
		Unlocked: map[string]bool{"stellarArithmeticMaster": true, "firstTryMaster": true},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.UnlockedAchievementIDs) != 0 || res.BonusXPFromAchievements != 0 {
		t.Fatalf("expected no new achievements, got %v (+%d)", res.UnlockedAchievementIDs, res.BonusXPFromAchievements)
	}
}
