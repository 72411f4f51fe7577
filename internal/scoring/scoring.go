// Package scoring validates submitted answers and applies score deductions.
// All functions are pure.
package scoring

import (
	"math"

	"github.com/abhisek/cosmath/internal/curriculum"
)

const (
	// MaxScore is the score a lesson session starts with.
	MaxScore = 100

	// BaseDeduction is subtracted for an incorrect answer.
	BaseDeduction = 10

	// CloseCredit is returned as partial credit for a close numeric answer,
	// reducing the deduction to BaseDeduction - CloseCredit.
	CloseCredit = 5

	// CloseTolerance is the relative window around the expected value in
	// which a wrong numeric answer counts as close.
	CloseTolerance = 0.10
)

// Result is the outcome of validating one submission.
type Result struct {
	IsCorrect     bool
	PartialCredit int
}

// Validate compares a submitted answer against the expected one.
//
// Numeric answers (including numeric strings) that differ from the expected
// value by no more than 10% of it earn partial credit. Set answers accept any
// member. Everything else uses tagged equality; mismatched kinds are simply
// incorrect.
func Validate(selected, expected curriculum.Answer) Result {
	if expected.Kind() == curriculum.KindSet {
		for _, m := range expected.Members() {
			if selected.Equal(m) {
				return Result{IsCorrect: true}
			}
		}
		return Result{}
	}

	if want, ok := expected.Float(); ok {
		if got, ok := selected.Float(); ok {
			diff := math.Abs(got - want)
			switch {
			case diff == 0:
				return Result{IsCorrect: true}
			case diff <= CloseTolerance*math.Abs(want)+1e-9:
				return Result{PartialCredit: CloseCredit}
			default:
				return Result{}
			}
		}
	}

	return Result{IsCorrect: selected.Equal(expected)}
}

// Deduction returns the number of points a result costs.
func Deduction(r Result) int {
	if r.IsCorrect {
		return 0
	}
	d := BaseDeduction - r.PartialCredit
	if d < 0 {
		return 0
	}
	return d
}

// ApplyScore returns the new score after a submission and the deduction
// applied. The score never drops below zero or exceeds MaxScore.
func ApplyScore(score int, r Result) (newScore, deduction int) {
	deduction = Deduction(r)
	newScore = min(max(score-deduction, 0), MaxScore)
	return newScore, deduction
}

// XPEarned returns floor(score/100 * reward) using integer arithmetic.
func XPEarned(score, reward int) int {
	if score <= 0 || reward <= 0 {
		return 0
	}
	score = min(score, MaxScore)
	return score * reward / MaxScore
}
