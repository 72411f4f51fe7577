package scoring

import (
	"testing"

	"github.com/abhisek/cosmath/internal/curriculum"
)

var (
	num  = curriculum.Number
	text = curriculum.Text
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		selected curriculum.Answer
		expected curriculum.Answer
		want     Result
	}{
		{"exact", num(27), num(27), Result{IsCorrect: true}},
		{"numeric string exact", text("27"), num(27), Result{IsCorrect: true}},
		{"off by exactly 10%", num(22), num(20), Result{PartialCredit: 5}},
		{"just inside 10%", text("5.9"), num(5.8), Result{PartialCredit: 5}},
		{"below within 10%", num(18), num(20), Result{PartialCredit: 5}},
		{"outside 10%", num(23), num(20), Result{}},
		{"negative expected", num(-11), num(-10), Result{PartialCredit: 5}},
		{"zero expected has no window", num(0.01), num(0), Result{}},
		{"string answer", text("S=D/T"), text("S=D/T"), Result{IsCorrect: true}},
		{"wrong string", text("S=D*T"), text("S=D/T"), Result{}},
		{"bool as string", text("true"), curriculum.Bool(true), Result{IsCorrect: true}},
		{"set member", text("4,3"), curriculum.Set(text("3,4"), text("4,3")), Result{IsCorrect: true}},
		{"set miss", text("5,2"), curriculum.Set(text("3,4"), text("4,3")), Result{}},
		{"set numeric member", text("8"), curriculum.Set(num(8), num(-8)), Result{IsCorrect: true}},
		{"type mismatch", text("abc"), num(5), Result{}},
		{"missing expected", text("5"), curriculum.Answer{}, Result{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.selected, tt.expected); got != tt.want {
				t.Errorf("Validate(%v, %v) = %+v, want %+v", tt.selected, tt.expected, got, tt.want)
			}
		})
	}
}

func TestApplyScore(t *testing.T) {
	tests := []struct {
		name          string
		score         int
		result        Result
		wantScore     int
		wantDeduction int
	}{
		{"correct", 100, Result{IsCorrect: true}, 100, 0},
		{"close", 100, Result{PartialCredit: CloseCredit}, 95, 5},
		{"wrong", 100, Result{}, 90, 10},
		{"floor at zero", 4, Result{}, 0, 10},
		{"close at zero", 0, Result{PartialCredit: CloseCredit}, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, d := ApplyScore(tt.score, tt.result)
			if got != tt.wantScore || d != tt.wantDeduction {
				t.Errorf("ApplyScore(%d, %+v) = (%d, %d), want (%d, %d)",
					tt.score, tt.result, got, d, tt.wantScore, tt.wantDeduction)
			}
		})
	}
}

func TestApplyScore_WrongThenClose(t *testing.T) {
	score := MaxScore
	score, _ = ApplyScore(score, Validate(num(5), num(20)))
	score, _ = ApplyScore(score, Validate(num(21), num(20)))
	if score != 85 {
		t.Fatalf("score = %d, want 85", score)
	}
}

func TestApplyScore_StaysInRange(t *testing.T) {
	score := MaxScore
	prev := score
	for i := range 30 {
		r := Result{}
		if i%3 == 0 {
			r.PartialCredit = CloseCredit
		}
		score, _ = ApplyScore(score, r)
		if score < 0 || score > MaxScore {
			t.Fatalf("score %d out of range", score)
		}
		if score > prev {
			t.Fatalf("score increased from %d to %d", prev, score)
		}
		prev = score
	}
	if score != 0 {
		t.Fatalf("expected score to bottom out at 0, got %d", score)
	}
}

func TestXPEarned(t *testing.T) {
	for _, reward := range []int{1, 7, 30, 50, 90, 200} {
		for score := 0; score <= MaxScore; score++ {
			got := XPEarned(score, reward)
			want := int(float64(score) / 100 * float64(reward))
			// Integer form must agree with floor(score/100*reward) except
			// where float rounding lands just below an integer.
			if got != want && got != want+1 {
				t.Fatalf("XPEarned(%d, %d) = %d, want %d", score, reward, got, want)
			}
			if got < 0 || got > reward {
				t.Fatalf("XPEarned(%d, %d) = %d out of [0, %d]", score, reward, got, reward)
			}
			if got*MaxScore > score*reward || (got+1)*MaxScore <= score*reward {
				t.Fatalf("XPEarned(%d, %d) = %d is not the floor", score, reward, got)
			}
		}
	}
	if XPEarned(100, 30) != 30 || XPEarned(85, 30) != 25 {
		t.Error("unexpected XP for known values")
	}
}
