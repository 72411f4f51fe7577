package llm

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
)

const mockModel = "mock"

// MockResponse is one scripted reply. A non-nil Err fails the call.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider answers from a script, one reply per call in order. Once
// the script is spent, Fallback answers if set; otherwise the provider
// reports itself unavailable. Replies go through the same truncation and
// schema checks as a real provider.
type MockProvider struct {
	Fallback func(Request) MockResponse

	mu     sync.Mutex
	script []MockResponse
	seen   []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	reply, ok := m.next(req)
	switch {
	case !ok:
		return nil, ErrUnavailable
	case reply.Err != nil:
		return nil, reply.Err
	}
	return finish(req, &Response{
		Content:    reply.Content,
		Usage:      reply.Usage,
		Model:      mockModel,
		StopReason: StopEnd,
	})
}

// next records req and pops the scripted reply for it.
func (m *MockProvider) next(req Request) (MockResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seen = append(m.seen, req)
	if len(m.script) > 0 {
		reply := m.script[0]
		m.script = m.script[1:]
		return reply, true
	}
	if m.Fallback != nil {
		return m.Fallback(req), true
	}
	return MockResponse{}, false
}

func (m *MockProvider) ModelID() string { return mockModel }

// Calls returns the requests received so far.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.seen)
}
