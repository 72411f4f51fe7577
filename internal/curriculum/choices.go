package curriculum

import (
	"fmt"
	"math/rand/v2"
)

// ChoiceCount is the number of options synthesized for a problem without
// explicit choices.
const ChoiceCount = 4

// Options returns the answer options for a problem. Explicit choices are
// returned shuffled. Otherwise four options are synthesized: the answer and
// three numeric neighbours within ±3 for numeric answers, or placeholder
// distractors for anything else.
func (p Problem) Options(rng *rand.Rand) []Answer {
	var out []Answer
	switch {
	case len(p.Choices) > 0:
		out = append(out, p.Choices...)
	case p.Answer.Kind() == KindBool:
		out = []Answer{Bool(true), Bool(false)}
	default:
		correct := p.Answer
		if correct.Kind() == KindSet {
			correct = correct.Members()[0]
		}
		out = append(out, correct)
		out = append(out, distractors(correct, ChoiceCount-1, rng)...)
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func distractors(correct Answer, n int, rng *rand.Rand) []Answer {
	v, numeric := correct.Float()
	if !numeric || correct.Kind() != KindNumber {
		pool := []int{1, 2, 3, 4, 5}
		rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		out := make([]Answer, n)
		for i := range n {
			out[i] = Text(fmt.Sprintf("Incorrect%d", pool[i]))
		}
		return out
	}

	offsets := []float64{-3, -2, -1, 1, 2, 3}
	rng.Shuffle(len(offsets), func(i, j int) { offsets[i], offsets[j] = offsets[j], offsets[i] })
	out := make([]Answer, 0, n)
	for _, off := range offsets {
		if len(out) == n {
			break
		}
		cand := v + off
		if v >= 0 && cand < 0 {
			continue
		}
		out = append(out, Number(cand))
	}
	return out
}
