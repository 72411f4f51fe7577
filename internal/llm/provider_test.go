package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	openai "github.com/sashabaranov/go-openai"
)

var hintSchema = &Schema{
	Name: "test-hint",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint":          map[string]any{"type": "string"},
			"encouragement": map[string]any{"type": "string"},
		},
		"required":             []string{"hint", "encouragement"},
		"additionalProperties": false,
	},
}

func jsonHandler(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

func newTestAnthropic(t *testing.T, h http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(srv.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 40, "output_tokens": 12},
	}
}

func userRequest() Request {
	return Request{
		System:    "You are a patient math tutor.",
		Messages:  []Message{{Role: RoleUser, Content: "The learner answered 7 for 3 + 5."}},
		Schema:    hintSchema,
		MaxTokens: 200,
	}
}

func TestAnthropicProvider(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, resp *Response, err error)
	}{
		{
			name:    "valid structured output",
			handler: jsonHandler(200, anthropicMessage(`{"hint":"Count up from 5.","encouragement":"Almost!"}`, "end_turn")),
			check: func(t *testing.T, resp *Response, err error) {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if resp.Usage.TotalTokens != 52 {
					t.Errorf("total tokens = %d, want 52", resp.Usage.TotalTokens)
				}
				if resp.StopReason != StopEnd {
					t.Errorf("stop reason = %q", resp.StopReason)
				}
			},
		},
		{
			name:    "schema mismatch",
			handler: jsonHandler(200, anthropicMessage(`{"hint":"Count up from 5."}`, "end_turn")),
			check: func(t *testing.T, _ *Response, err error) {
				if !errors.Is(err, ErrInvalidOutput) {
					t.Fatalf("want invalid output, got %T (%v)", err, err)
				}
			},
		},
		{
			name:    "truncated",
			handler: jsonHandler(200, anthropicMessage(`{"hint":"Count`, "max_tokens")),
			check: func(t *testing.T, _ *Response, err error) {
				if !errors.Is(err, ErrTruncated) {
					t.Fatalf("want truncation, got %T (%v)", err, err)
				}
			},
		},
		{
			name: "rate limited",
			handler: jsonHandler(http.StatusTooManyRequests, map[string]any{
				"type":  "error",
				"error": map[string]any{"type": "rate_limit_error", "message": "slow down"},
			}),
			check: func(t *testing.T, _ *Response, err error) {
				if !errors.Is(err, ErrRateLimited) {
					t.Fatalf("want rate limit, got %T (%v)", err, err)
				}
			},
		},
		{
			name: "server error",
			handler: jsonHandler(http.StatusInternalServerError, map[string]any{
				"type":  "error",
				"error": map[string]any{"type": "api_error", "message": "boom"},
			}),
			check: func(t *testing.T, _ *Response, err error) {
				if !errors.Is(err, ErrUnavailable) {
					t.Fatalf("want unavailable, got %T (%v)", err, err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropic(t, tt.handler)
			resp, err := p.Generate(context.Background(), userRequest())
			tt.check(t, resp, err)
		})
	}
}

func newTestOpenAI(t *testing.T, h http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewOpenAIProvider(Config{Provider: ProviderOpenAI, APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func openAICompletion(content string, finish openai.FinishReason) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		ID:    "chatcmpl-1",
		Model: "gpt-4o-mini",
		Choices: []openai.ChatCompletionChoice{{
			Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
			FinishReason: finish,
		}},
		Usage: openai.Usage{PromptTokens: 30, CompletionTokens: 10, TotalTokens: 40},
	}
}

func TestOpenAIProvider_SendsSchemaAndSystemPrompt(t *testing.T) {
	var got openai.ChatCompletionRequest
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		jsonHandler(200, openAICompletion(`{"hint":"Try 3 + 5 on your fingers.","encouragement":"Keep going"}`, openai.FinishReasonStop))(w, r)
	})

	resp, err := p.Generate(context.Background(), userRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Model != "gpt-4o-mini" || resp.Usage.TotalTokens != 40 {
		t.Errorf("resp = %+v", resp)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Fatalf("messages = %+v", got.Messages)
	}
	if got.ResponseFormat == nil || got.ResponseFormat.JSONSchema == nil {
		t.Fatal("expected json_schema response format")
	}
	if got.ResponseFormat.JSONSchema.Name != "test-hint" || !got.ResponseFormat.JSONSchema.Strict {
		t.Errorf("schema format = %+v", got.ResponseFormat.JSONSchema)
	}
}

func TestOpenAIProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{"length", jsonHandler(200, openAICompletion(`{"hint":`, openai.FinishReasonLength)), ErrTruncated},
		{"no choices", jsonHandler(200, openai.ChatCompletionResponse{Model: "gpt-4o-mini"}), ErrInvalidOutput},
		{"rate limit", jsonHandler(429, map[string]any{"error": map[string]any{"message": "slow", "type": "rate_limit"}}), ErrRateLimited},
		{"unavailable", jsonHandler(503, map[string]any{"error": map[string]any{"message": "down", "type": "server_error"}}), ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestOpenAI(t, tt.handler).Generate(context.Background(), userRequest())
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %T (%v)", err, err)
			}
		})
	}
}

func TestOpenRouterDefaultsBaseURL(t *testing.T) {
	p, err := NewOpenAIProvider(Config{Provider: ProviderOpenRouter, APIKey: "k"})
	if err != nil {
		t.Fatal(err)
	}
	if p.ModelID() != "google/gemini-2.0-flash-exp" {
		t.Errorf("model = %q", p.ModelID())
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"claude-haiku", "claude-haiku-4-5-20251001"},
		{"claude-sonnet", "claude-sonnet-4-20250514"},
		{"claude-opus-4-5", "claude-opus-4-5"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.in, anthropicAliases); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMockProvider(t *testing.T) {
	m := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"hint":"a","encouragement":"b"}`)},
		MockResponse{Content: json.RawMessage(`{"nope":1}`)},
	)
	ctx := context.Background()

	if _, err := m.Generate(ctx, userRequest()); err != nil {
		t.Fatalf("first: %v", err)
	}
	_, err := m.Generate(ctx, userRequest())
	var e *Error
	if !errors.As(err, &e) || e.Kind != KindInvalidOutput {
		t.Fatalf("second: want invalid output, got %v", err)
	}
	if string(e.Content) != `{"nope":1}` {
		t.Errorf("content = %s", e.Content)
	}
	if _, err := m.Generate(ctx, userRequest()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("spent script: want ErrUnavailable, got %v", err)
	}

	m.Fallback = func(req Request) MockResponse {
		return MockResponse{Content: json.RawMessage(`{"hint":"` + req.Purpose + `","encouragement":"b"}`)}
	}
	req := userRequest()
	req.Purpose = PurposeHint
	resp, err := m.Generate(ctx, req)
	if err != nil {
		t.Fatalf("fallback: %v", err)
	}
	if string(resp.Content) != `{"hint":"hint","encouragement":"b"}` {
		t.Errorf("fallback content = %s", resp.Content)
	}
	if n := len(m.Calls()); n != 4 {
		t.Errorf("calls = %d", n)
	}
}

func TestErrorKinds(t *testing.T) {
	rl := fromStatus(http.StatusTooManyRequests, http.Header{"Retry-After": []string{"7"}}, errors.New("slow"))
	if !errors.Is(rl, ErrRateLimited) || errors.Is(rl, ErrUnavailable) {
		t.Fatalf("429 classified as %v", rl.Kind)
	}
	if rl.RetryAfter != 7*time.Second {
		t.Errorf("RetryAfter = %v", rl.RetryAfter)
	}
	if !strings.Contains(rl.Error(), "retry after 7s") || !strings.Contains(rl.Error(), "slow") {
		t.Errorf("message = %q", rl.Error())
	}

	down := fromStatus(http.StatusBadGateway, nil, errors.New("gateway"))
	if !errors.Is(down, ErrUnavailable) || down.RetryAfter != 0 {
		t.Errorf("502 = %+v", down)
	}
	wrapped := fmt.Errorf("hint: %w", down)
	if kindOf(wrapped) != KindUnavailable || kindOf(errors.New("plain")) != 0 {
		t.Error("kindOf should follow the wrap chain")
	}
	if errors.Is(ErrTruncated, ErrInvalidOutput) {
		t.Error("kinds must not match each other")
	}
}

func TestLookupCost(t *testing.T) {
	c, ok := LookupCost("gpt-4o-mini")
	if !ok {
		t.Fatal("gpt-4o-mini should be priced")
	}
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("cost = %v, want 0.75", got)
	}
	if _, ok := LookupCost("unknown-model"); ok {
		t.Error("unknown model should not be priced")
	}
}
