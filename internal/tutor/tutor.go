// Package tutor asks a language model for a short hint after a wrong
// answer. Hints never reveal the expected answer.
package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"text/template"

	"github.com/abhisek/cosmath/internal/curriculum"
	"github.com/abhisek/cosmath/internal/llm"
	"github.com/abhisek/cosmath/internal/scoring"
)

// Nudge replaces any hint that gives the answer away.
const Nudge = "Read the question again and work it out one step at a time."

// Config tunes the hint request.
type Config struct {
	MaxTokens   int
	Temperature float64
}

func DefaultConfig() Config {
	return Config{MaxTokens: 256, Temperature: 0.4}
}

// Hint is what the game screen shows under a wrong answer.
type Hint struct {
	Text          string `json:"hint"`
	Encouragement string `json:"encouragement"`
	// Redacted is set when the model's hint contained the answer and was
	// replaced by Nudge.
	Redacted bool `json:"-"`
}

// Tutor produces hints.
type Tutor struct {
	provider llm.Provider
	cfg      Config
}

func New(provider llm.Provider, cfg Config) *Tutor {
	return &Tutor{provider: provider, cfg: cfg}
}

type hintPrompt struct {
	Topic    string
	Question string
	Unit     string
	Given    string
	Close    bool
}

// Hint asks for a hint on p given the learner's wrong answer.
func (t *Tutor) Hint(ctx context.Context, topic curriculum.Topic, p curriculum.Problem, wrong curriculum.Answer) (Hint, error) {
	var buf bytes.Buffer
	err := hintTemplate.Execute(&buf, hintPrompt{
		Topic:    topic.DisplayName(),
		Question: p.Question,
		Unit:     p.Unit,
		Given:    wrong.String(),
		Close:    scoring.Validate(wrong, p.Answer).PartialCredit > 0,
	})
	if err != nil {
		return Hint{}, fmt.Errorf("build hint prompt: %w", err)
	}

	resp, err := t.provider.Generate(ctx, llm.Request{
		Purpose:     llm.PurposeHint,
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buf.String()}},
		Schema:      HintSchema,
		MaxTokens:   t.cfg.MaxTokens,
		Temperature: t.cfg.Temperature,
	})
	if err != nil {
		return Hint{}, fmt.Errorf("generate hint: %w", err)
	}

	var h Hint
	if err := json.Unmarshal(resp.Content, &h); err != nil {
		return Hint{}, fmt.Errorf("decode hint: %w", err)
	}
	h.Text = strings.TrimSpace(h.Text)
	h.Encouragement = strings.TrimSpace(h.Encouragement)
	if reveals(h.Text, p) || reveals(h.Encouragement, p) {
		h.Text = Nudge
		h.Redacted = true
	}
	return h, nil
}

// reveals reports whether text states the expected answer as a standalone
// token. Values already printed in the question do not count.
func reveals(text string, p curriculum.Problem) bool {
	re := answerPattern(answerForms(p.Answer))
	if re == nil {
		return false
	}
	given := make(map[string]bool)
	for _, form := range matchedForms(re, p.Question) {
		given[form] = true
	}
	for _, form := range matchedForms(re, text) {
		if !given[form] {
			return true
		}
	}
	return false
}

// answerPattern matches any of forms after a non-word boundary. Longer forms
// come first so "12" is not shadowed by "1".
func answerPattern(forms []string) *regexp.Regexp {
	if len(forms) == 0 {
		return nil
	}
	forms = slices.Clone(forms)
	slices.SortFunc(forms, func(a, b string) int { return len(b) - len(a) })
	quoted := make([]string, len(forms))
	for i, f := range forms {
		quoted[i] = regexp.QuoteMeta(f)
	}
	return regexp.MustCompile(`(?i)(?:^|[^\w.])(` + strings.Join(quoted, "|") + `)`)
}

// matchedForms returns the lowercased forms found in s that end at a word
// boundary.
func matchedForms(re *regexp.Regexp, s string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatchIndex(s, -1) {
		end := m[3]
		if end < len(s) && isWordByte(s[end]) {
			continue
		}
		out = append(out, strings.ToLower(s[m[2]:end]))
	}
	return out
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func answerForms(a curriculum.Answer) []string {
	switch a.Kind() {
	case curriculum.KindSet:
		var out []string
		for _, m := range a.Members() {
			out = append(out, answerForms(m)...)
		}
		return out
	case curriculum.KindBool:
		// "true"/"false" are ordinary words in a hint.
		return nil
	}
	if s := strings.TrimSpace(a.String()); s != "" {
		return []string{s}
	}
	return nil
}

const systemPrompt = `You are a friendly space-themed math tutor for kids. A learner just answered a question incorrectly.

Rules:
- Give ONE short hint (max 2 sentences) that points at the next step.
- NEVER state the correct answer or any expression that equals it.
- Add one short encouraging sentence, optionally with a space pun.`

var hintTemplate = template.Must(template.New("hint").Parse(`Topic: {{.Topic}}
Question: {{.Question}}{{if .Unit}} (answer in {{.Unit}}){{end}}
Learner's answer: {{.Given}}
{{if .Close}}The answer is close, probably a rounding or small arithmetic slip.{{else}}The answer is not close.{{end}}`))

// HintSchema is the structured output the model must return.
var HintSchema = &llm.Schema{
	Name:        "tutor-hint",
	Description: "A hint for a wrong answer that does not reveal the solution",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{
				"type":        "string",
				"description": "One or two sentences pointing at the next step",
			},
			"encouragement": map[string]any{
				"type":        "string",
				"description": "One short encouraging sentence",
			},
		},
		"required":             []any{"hint", "encouragement"},
		"additionalProperties": false,
	},
}
