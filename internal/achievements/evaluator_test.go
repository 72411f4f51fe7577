package achievements

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/cosmath/internal/curriculum"
)

func mustLesson(t *testing.T, id string) curriculum.Lesson {
	t.Helper()
	l, err := curriculum.Default().Get(id)
	if err != nil {
		t.Fatalf("get lesson %s: %v", id, err)
	}
	return l
}

func ones(n int) []int {
	a := make([]int, n)
	for i := range a {
		a[i] = 1
	}
	return a
}

func newEvaluator() *Evaluator {
	return NewEvaluator(DefaultTable(), curriculum.Default())
}

func TestValidate_SeedPasses(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("seed achievements validation failed: %v", err)
	}
}

func TestEvaluate_PerfectFirstLesson(t *testing.T) {
	l := mustLesson(t, "alg0")
	got := newEvaluator().Evaluate(Input{
		Lesson:     l,
		FinalScore: 100,
		Attempts:   ones(l.ProblemCount()),
		Elapsed:    10 * time.Minute,
	})
	want := []string{"stellarArithmeticMaster", "firstTryMaster"}
	if !slices.Equal(got, want) {
		t.Fatalf("Evaluate = %v, want %v", got, want)
	}
}

func TestEvaluate_LessonThreshold(t *testing.T) {
	l := mustLesson(t, "geo1")
	tests := []struct {
		score int
		want  bool
	}{
		{79, false},
		{80, true},
		{95, true},
	}
	for _, tt := range tests {
		got := newEvaluator().Evaluate(Input{
			Lesson:     l,
			FinalScore: tt.score,
			Attempts:   []int{2, 1, 1, 1},
			Elapsed:    time.Hour,
		})
		if slices.Contains(got, "threeDSpaceMaster") != tt.want {
			t.Errorf("score %d: got %v, want threeDSpaceMaster=%v", tt.score, got, tt.want)
		}
		if slices.Contains(got, "spaceShapesMaster") {
			t.Errorf("score %d: achievement for another lesson unlocked: %v", tt.score, got)
		}
	}
}

func TestEvaluate_AlreadyUnlockedNeverReturned(t *testing.T) {
	l := mustLesson(t, "alg0")
	got := newEvaluator().Evaluate(Input{
		Lesson:     l,
		FinalScore: 100,
		Attempts:   ones(l.ProblemCount()),
		Elapsed:    time.Second,
		Unlocked: map[string]bool{
			"stellarArithmeticMaster": true,
			"firstTryMaster":          true,
			"speedRunner":             true,
		},
	})
	if len(got) != 0 {
		t.Fatalf("expected nothing new, got %v", got)
	}
}

func TestEvaluate_AggregateNeedsNinetyEverywhere(t *testing.T) {
	alg3 := mustLesson(t, "alg3")
	history := map[string]int{"alg0": 95, "alg1": 90, "alg2": 100}
	unlocked := map[string]bool{"orbitalPercentagesMaster": true}

	first := newEvaluator().Evaluate(Input{
		Lesson:     alg3,
		FinalScore: 85,
		Attempts:   []int{1, 2, 1, 1, 1},
		Elapsed:    time.Hour,
		Completed:  history,
		Unlocked:   unlocked,
	})
	if slices.Contains(first, "algebraProdigy") {
		t.Fatalf("algebraProdigy unlocked at 85: %v", first)
	}

	history["alg3"] = 85
	second := newEvaluator().Evaluate(Input{
		Lesson:     alg3,
		FinalScore: 90,
		Attempts:   []int{1, 1, 1, 2, 1},
		Elapsed:    time.Hour,
		Completed:  history,
		Unlocked:   unlocked,
	})
	if !slices.Contains(second, "algebraProdigy") {
		t.Fatalf("algebraProdigy not unlocked after re-completion at 90: %v", second)
	}
}

func TestEvaluate_AggregateFromOtherLesson(t *testing.T) {
	// An aggregate may unlock while playing a lesson it does not list,
	// as long as the history already qualifies.
	got := newEvaluator().Evaluate(Input{
		Lesson:     mustLesson(t, "geo0"),
		FinalScore: 50,
		Attempts:   []int{3, 1, 1, 1, 1},
		Elapsed:    time.Hour,
		Completed:  map[string]int{"calc0": 90, "calc1": 92, "calc2": 99},
	})
	if !slices.Contains(got, "calculusProdigy") {
		t.Fatalf("expected calculusProdigy, got %v", got)
	}
}

func TestEvaluate_SpeedRunner(t *testing.T) {
	l := mustLesson(t, "calc1") // 3 problems, 45s budget
	tests := []struct {
		elapsed time.Duration
		want    bool
	}{
		{44 * time.Second, true},
		{45 * time.Second, false},
		{2 * time.Minute, false},
	}
	for _, tt := range tests {
		got := newEvaluator().Evaluate(Input{
			Lesson:     l,
			FinalScore: 60,
			Attempts:   []int{2, 2, 2},
			Elapsed:    tt.elapsed,
		})
		if slices.Contains(got, "speedRunner") != tt.want {
			t.Errorf("elapsed %v: got %v, want speedRunner=%v", tt.elapsed, got, tt.want)
		}
	}
}

func TestEvaluate_FirstTryMasterNeedsEveryProblem(t *testing.T) {
	l := mustLesson(t, "alg0")
	got := newEvaluator().Evaluate(Input{
		Lesson:     l,
		FinalScore: 100,
		Attempts:   ones(l.ProblemCount() - 1),
		Elapsed:    time.Hour,
	})
	if slices.Contains(got, "firstTryMaster") {
		t.Fatalf("firstTryMaster unlocked with a partial attempt record: %v", got)
	}
}

func TestEvaluate_TopicMasterAndCosmicScholar(t *testing.T) {
	history := map[string]int{}
	for _, l := range curriculum.Default().All() {
		history[l.ID] = 85
	}
	delete(history, "calc2")

	got := newEvaluator().Evaluate(Input{
		Lesson:     mustLesson(t, "calc2"),
		FinalScore: 80,
		Attempts:   []int{1, 2, 1, 1},
		Elapsed:    time.Hour,
		Completed:  history,
	})
	for _, want := range []string{"blackHoleLogicMaster", "topicMaster", "cosmicScholar"} {
		if !slices.Contains(got, want) {
			t.Errorf("expected %s in %v", want, got)
		}
	}
	for _, prodigy := range []string{"algebraProdigy", "geometryProdigy", "calculusProdigy"} {
		if slices.Contains(got, prodigy) {
			t.Errorf("%s should need 90%%, got %v", prodigy, got)
		}
	}
}

func TestEvaluate_NilHistory(t *testing.T) {
	got := newEvaluator().Evaluate(Input{
		Lesson:     mustLesson(t, "alg1"),
		FinalScore: 40,
		Attempts:   []int{2, 2, 2, 2, 2},
		Elapsed:    time.Hour,
	})
	if len(got) != 0 {
		t.Fatalf("expected nothing for a weak first attempt, got %v", got)
	}
}

func TestEvaluate_TableOrder(t *testing.T) {
	l := mustLesson(t, "alg0")
	got := newEvaluator().Evaluate(Input{
		Lesson:     l,
		FinalScore: 100,
		Attempts:   ones(l.ProblemCount()),
		Elapsed:    time.Second,
	})
	want := []string{"stellarArithmeticMaster", "speedRunner", "firstTryMaster"}
	if !slices.Equal(got, want) {
		t.Fatalf("Evaluate = %v, want %v", got, want)
	}
}

func TestValidateDefinitions(t *testing.T) {
	tests := []struct {
		name string
		defs []Definition
		want string
	}{
		{"duplicate", []Definition{
			{ID: "a", ExclusiveTo: []string{"alg0"}},
			{ID: "a", ExclusiveTo: []string{"alg1"}},
		}, "duplicate"},
		{"unknown lesson", []Definition{{ID: "a", ExclusiveTo: []string{"ghost"}}}, "ghost"},
		{"global without predicate", []Definition{{ID: "a"}}, "no predicate"},
		{"unknown predicate", []Definition{{ID: "a", Predicate: "moonWalker"}}, "unknown predicate"},
		{"aggregate without lessons", []Definition{{ID: "a", RequiresAll: true, Predicate: PredicateSpeedRunner}}, "RequiresAll"},
		{"negative xp", []Definition{{ID: "a", XPReward: -5, Predicate: PredicateSpeedRunner}}, "XPReward"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDefinitions(tt.defs, curriculum.Default())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should mention %q, got: %v", tt.want, err)
			}
		})
	}
}

func TestTableFor_DropsForeignLessons(t *testing.T) {
	c, err := curriculum.New([]curriculum.Lesson{{
		ID: "alg0", Title: "Only", Topic: curriculum.TopicAlgebra, XPReward: 10,
		Problems: []curriculum.Problem{{Question: "q", Answer: curriculum.Number(1)}},
	}})
	if err != nil {
		t.Fatal(err)
	}
	table, err := TableFor(c)
	if err != nil {
		t.Fatalf("TableFor: %v", err)
	}
	if _, ok := table.Get("stellarArithmeticMaster"); !ok {
		t.Error("expected alg0 achievement to be kept")
	}
	if _, ok := table.Get("algebraProdigy"); ok {
		t.Error("expected aggregate over missing lessons to be dropped")
	}
	if _, ok := table.Get("speedRunner"); !ok {
		t.Error("expected global achievements to be kept")
	}
}

func TestBonusXP(t *testing.T) {
	got := DefaultTable().BonusXP([]string{"stellarArithmeticMaster", "firstTryMaster", "unknown"})
	if got != 30+75 {
		t.Fatalf("BonusXP = %d, want 105", got)
	}
}
