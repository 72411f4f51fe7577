package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		schema  *Schema
		raw     string
		wantErr bool
	}{
		{"nil schema accepts anything", nil, `not json`, false},
		{"valid", hintSchema, `{"hint":"x","encouragement":"y"}`, false},
		{"not json", hintSchema, `{"hint":`, true},
		{"missing field", hintSchema, `{"hint":"x"}`, true},
		{"extra field", hintSchema, `{"hint":"x","encouragement":"y","answer":"8"}`, true},
		{"wrong type", hintSchema, `{"hint":1,"encouragement":"y"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(tt.schema, json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidOutput) {
				t.Fatalf("want ErrInvalidOutput, got %T", err)
			}
		})
	}
}

func TestCompileSchemaIsCached(t *testing.T) {
	s := &Schema{Name: "test-cache", Definition: map[string]any{"type": "string"}}
	a, err := compileSchema(s)
	if err != nil {
		t.Fatal(err)
	}
	b, err := compileSchema(s)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("second compile should hit the cache")
	}
}

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint":  map[string]any{"type": "string", "description": "one sentence"},
			"steps": map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
			"tone":  map[string]any{"type": "string", "enum": []any{"calm", "excited"}},
		},
		"required": []string{"hint"},
	}
	s := geminiSchema(def)
	if s.Type != "OBJECT" {
		t.Errorf("type = %q", s.Type)
	}
	if len(s.Required) != 1 || s.Required[0] != "hint" {
		t.Errorf("required = %v", s.Required)
	}
	if s.Properties["hint"].Description != "one sentence" {
		t.Errorf("hint = %+v", s.Properties["hint"])
	}
	if s.Properties["steps"].Items == nil || s.Properties["steps"].Items.Type != "INTEGER" {
		t.Errorf("steps = %+v", s.Properties["steps"])
	}
	if len(s.Properties["tone"].Enum) != 2 {
		t.Errorf("enum = %v", s.Properties["tone"].Enum)
	}
}
