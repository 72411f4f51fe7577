package achievements

import (
	"time"

	"github.com/abhisek/cosmath/internal/curriculum"
)

const (
	// LessonThreshold is the final score a lesson-exclusive achievement
	// needs.
	LessonThreshold = 80

	// AggregateThreshold is the recorded score every lesson of a
	// RequiresAll achievement needs.
	AggregateThreshold = 90

	// SpeedRunPerProblem is the time budget per problem for speedRunner.
	SpeedRunPerProblem = 15 * time.Second
)

// Input is everything the evaluator looks at for one lesson completion.
type Input struct {
	Lesson     curriculum.Lesson
	FinalScore int

	// Attempts holds the submission count per problem index.
	Attempts []int
	Elapsed  time.Duration

	// Completed maps lesson IDs to their recorded final score before this
	// completion. Nil means no history.
	Completed map[string]int

	// Unlocked holds achievement IDs the learner already has.
	Unlocked map[string]bool
}

// Evaluator decides which achievements a lesson completion unlocks.
// It performs no I/O.
type Evaluator struct {
	table   *Table
	catalog *curriculum.Catalog
}

// NewEvaluator returns an evaluator over the given tables.
func NewEvaluator(table *Table, catalog *curriculum.Catalog) *Evaluator {
	return &Evaluator{table: table, catalog: catalog}
}

// Table returns the definitions the evaluator checks.
func (e *Evaluator) Table() *Table { return e.table }

// Evaluate returns the IDs of newly qualified achievements in table order.
// Achievements already unlocked are never returned again.
func (e *Evaluator) Evaluate(in Input) []string {
	scores := mergedScores(in)

	var out []string
	seen := make(map[string]bool)
	for _, d := range e.table.defs {
		if in.Unlocked[d.ID] || seen[d.ID] {
			continue
		}
		if !d.Global() && !d.RequiresAll && !d.AppliesTo(in.Lesson.ID) {
			continue
		}

		var ok bool
		switch {
		case d.RequiresAll:
			ok = allAtLeast(d.ExclusiveTo, scores, AggregateThreshold)
		case !d.Global():
			ok = in.FinalScore >= LessonThreshold
		default:
			ok = e.predicate(d.Predicate, in, scores)
		}
		if ok {
			seen[d.ID] = true
			out = append(out, d.ID)
		}
	}
	return out
}

func (e *Evaluator) predicate(p Predicate, in Input, scores map[string]int) bool {
	switch p {
	case PredicateSpeedRunner:
		n := in.Lesson.ProblemCount()
		return n > 0 && in.Elapsed < time.Duration(n)*SpeedRunPerProblem
	case PredicateFirstTryMaster:
		if len(in.Attempts) == 0 || len(in.Attempts) != in.Lesson.ProblemCount() {
			return false
		}
		for _, a := range in.Attempts {
			if a != 1 {
				return false
			}
		}
		return true
	case PredicateTopicMaster:
		if e.catalog == nil {
			return false
		}
		return allAtLeast(lessonIDs(e.catalog.ByTopic(in.Lesson.Topic)), scores, LessonThreshold)
	case PredicateCosmicScholar:
		if e.catalog == nil {
			return false
		}
		return allAtLeast(lessonIDs(e.catalog.All()), scores, LessonThreshold)
	default:
		return false
	}
}

// mergedScores overlays the current completion on the learner's history.
func mergedScores(in Input) map[string]int {
	scores := make(map[string]int, len(in.Completed)+1)
	for id, s := range in.Completed {
		scores[id] = s
	}
	if in.Lesson.ID != "" {
		scores[in.Lesson.ID] = in.FinalScore
	}
	return scores
}

func allAtLeast(ids []string, scores map[string]int, threshold int) bool {
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		s, ok := scores[id]
		if !ok || s < threshold {
			return false
		}
	}
	return true
}

func lessonIDs(lessons []curriculum.Lesson) []string {
	ids := make([]string, len(lessons))
	for i, l := range lessons {
		ids[i] = l.ID
	}
	return ids
}
