package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MockResponse is one scripted turn for the MockProvider: either canned
// model output or the error the provider should surface for that call.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider plays back a fixed script of responses, one per Generate
// call, and records every request it saw. Tests script the exact
// question batches and grades a scenario needs and then inspect Calls
// to assert on the prompts that produced them.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	Calls  []Request
}

// NewMockProvider builds a provider that answers Generate calls with the
// given responses in order.
func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

// Generate consumes the next scripted turn. Running past the end of the
// script surfaces as the provider being unavailable, which keeps an
// over-calling test from hanging on a retry loop forever.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.Calls) > len(m.script) {
		return nil, &UnavailableError{Err: errors.New("mock script exhausted")}
	}

	turn := m.script[len(m.Calls)-1]
	if turn.Err != nil {
		return nil, turn.Err
	}

	return &Response{
		Content:    turn.Content,
		Usage:      turn.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// CallCount reports how many Generate calls the provider has served.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
