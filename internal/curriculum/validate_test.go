package curriculum

import (
	"strings"
	"testing"
)

func lesson(id string, prereqs ...string) Lesson {
	return Lesson{
		ID:            id,
		Title:         strings.ToUpper(id),
		Topic:         TopicAlgebra,
		XPReward:      10,
		Problems:      []Problem{{Question: "1+1", Answer: Number(2)}},
		Prerequisites: prereqs,
	}
}

func TestValidate_SeedPasses(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("seed curriculum validation failed: %v", err)
	}
}

func TestValidateLessons(t *testing.T) {
	noProblems := lesson("a")
	noProblems.Problems = nil

	zeroXP := lesson("a")
	zeroXP.XPReward = 0

	badTopic := lesson("a")
	badTopic.Topic = "astronomy"

	badChoices := lesson("a")
	badChoices.Problems[0].Choices = []Answer{Number(3), Number(4)}

	tests := []struct {
		name    string
		lessons []Lesson
		want    string
	}{
		{"cycle", []Lesson{lesson("root"), lesson("a", "b"), lesson("b", "a")}, "cycle"},
		{"dangling prereq", []Lesson{lesson("a"), lesson("b", "nonexistent")}, "nonexistent"},
		{"duplicate id", []Lesson{lesson("a"), lesson("a")}, "duplicate"},
		{"no root", []Lesson{lesson("a", "b"), lesson("b", "a")}, "no root"},
		{"self prereq", []Lesson{lesson("root"), lesson("a", "a")}, "itself"},
		{"no problems", []Lesson{noProblems}, "no problems"},
		{"zero xp", []Lesson{zeroXP}, "XPReward"},
		{"unknown topic", []Lesson{badTopic}, "unknown topic"},
		{"choices missing answer", []Lesson{badChoices}, "choices"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLessons(tt.lessons)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should mention %q, got: %v", tt.want, err)
			}
		})
	}
}

func TestValidateLessons_CollectsAllErrors(t *testing.T) {
	zeroXP := lesson("b")
	zeroXP.XPReward = -1
	err := validateLessons([]Lesson{lesson("a"), zeroXP, lesson("c", "missing")})
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "XPReward") || !strings.Contains(msg, "missing") {
		t.Errorf("expected both problems reported, got: %v", msg)
	}
}
