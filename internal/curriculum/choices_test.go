package curriculum

import (
	"math/rand/v2"
	"testing"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestOptions_Numeric(t *testing.T) {
	p := Problem{Question: "5+5", Answer: Number(10)}
	rng := testRand()

	for range 50 {
		opts := p.Options(rng)
		if len(opts) != ChoiceCount {
			t.Fatalf("expected %d options, got %d", ChoiceCount, len(opts))
		}
		seen := map[string]bool{}
		hasAnswer := false
		for _, o := range opts {
			if seen[o.String()] {
				t.Fatalf("duplicate option %v in %v", o, opts)
			}
			seen[o.String()] = true
			v, ok := o.Float()
			if !ok {
				t.Fatalf("non-numeric option %v", o)
			}
			if v < 7 || v > 13 {
				t.Fatalf("option %v outside ±3 window", v)
			}
			if o.Equal(p.Answer) {
				hasAnswer = true
			}
		}
		if !hasAnswer {
			t.Fatalf("options %v do not include the answer", opts)
		}
	}
}

func TestOptions_SmallAnswerStaysNonNegative(t *testing.T) {
	p := Problem{Question: "0+0", Answer: Number(0)}
	rng := testRand()
	for range 20 {
		for _, o := range p.Options(rng) {
			if v, _ := o.Float(); v < 0 {
				t.Fatalf("negative option %v for non-negative answer", v)
			}
		}
	}
}

func TestOptions_TextAnswer(t *testing.T) {
	p := Problem{Question: "formula", Answer: Text("E=mc2")}
	opts := p.Options(testRand())
	if len(opts) != ChoiceCount {
		t.Fatalf("expected %d options, got %d", ChoiceCount, len(opts))
	}
	found := 0
	for _, o := range opts {
		if o.Equal(p.Answer) {
			found++
		}
	}
	if found != 1 {
		t.Errorf("expected answer exactly once, found %d", found)
	}
}

func TestOptions_ExplicitAndBool(t *testing.T) {
	explicit := Problem{Answer: Text("a"), Choices: []Answer{Text("a"), Text("b")}}
	if got := explicit.Options(testRand()); len(got) != 2 {
		t.Errorf("explicit choices: got %d options, want 2", len(got))
	}

	tf := Problem{Answer: Bool(false)}
	if got := tf.Options(testRand()); len(got) != 2 {
		t.Errorf("bool answer: got %d options, want 2", len(got))
	}
}
