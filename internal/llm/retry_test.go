package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func newTestRetry(p Provider, attempts int) (*RetryProvider, *[]time.Duration) {
	r := WithRetry(p, RetryConfig{
		MaxAttempts: attempts,
		InitialWait: 100 * time.Millisecond,
		MaxWait:     time.Second,
		Multiplier:  2,
	}, 0)
	var waits []time.Duration
	r.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	return r, &waits
}

var okReply = MockResponse{Content: json.RawMessage(`{"hint":"h","encouragement":"e"}`)}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		replies   []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"succeeds first try", []MockResponse{okReply}, false, 1},
		{"recovers from outage", []MockResponse{{Err: ErrUnavailable}, {Err: ErrRateLimited}, okReply}, false, 3},
		{"gives up after max attempts", []MockResponse{{Err: ErrUnavailable}, {Err: ErrUnavailable}, {Err: ErrUnavailable}, okReply}, true, 3},
		{"max tokens is final", []MockResponse{{Err: ErrTruncated}, okReply}, true, 1},
		{"invalid output retried once", []MockResponse{{Content: json.RawMessage(`{}`)}, okReply}, false, 2},
		{"invalid output twice fails", []MockResponse{{Content: json.RawMessage(`{}`)}, {Content: json.RawMessage(`[]`)}, okReply}, true, 2},
		{"canceled is final", []MockResponse{{Err: context.Canceled}, okReply}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMockProvider(tt.replies...)
			r, _ := newTestRetry(m, 3)
			_, err := r.Generate(context.Background(), userRequest())
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got := len(m.Calls()); got != tt.wantCalls {
				t.Errorf("calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestRetry_Backoff(t *testing.T) {
	m := NewMockProvider(
		MockResponse{Err: ErrUnavailable},
		MockResponse{Err: &Error{Kind: KindRateLimited, RetryAfter: 3 * time.Second}},
		MockResponse{Err: ErrUnavailable},
		okReply,
	)
	r, waits := newTestRetry(m, 4)
	if _, err := r.Generate(context.Background(), userRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*waits) != 3 {
		t.Fatalf("waits = %v", *waits)
	}
	within := func(got, want time.Duration) bool {
		return got >= want*8/10 && got <= want*12/10
	}
	if !within((*waits)[0], 100*time.Millisecond) {
		t.Errorf("first wait = %v", (*waits)[0])
	}
	if (*waits)[1] != 3*time.Second {
		t.Errorf("rate limit wait = %v, want RetryAfter", (*waits)[1])
	}
	if !within((*waits)[2], 400*time.Millisecond) {
		t.Errorf("third wait = %v", (*waits)[2])
	}
}

func TestRetry_SleepHonorsContext(t *testing.T) {
	m := NewMockProvider(MockResponse{Err: ErrUnavailable}, okReply)
	r := WithRetry(m, RetryConfig{MaxAttempts: 2, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 1}, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Generate(ctx, userRequest())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
