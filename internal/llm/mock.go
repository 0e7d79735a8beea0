package llm

import (
	"context"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Text string
	Err  error
}

// MockProvider returns canned responses in FIFO order and records all
// requests. When the queue is empty it answers with Fallback, or fails
// with ErrProviderUnavailable if Fallback is empty.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Fallback  string
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		if m.Fallback == "" {
			return nil, &ErrProviderUnavailable{}
		}
		return &Response{Text: m.Fallback, Model: "mock", StopReason: "end"}, nil
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]
	if resp.Err != nil {
		return nil, resp.Err
	}
	return &Response{Text: resp.Text, Model: "mock", StopReason: "end"}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request, if any.
func (m *MockProvider) LastCall() (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return Request{}, false
	}
	return m.Calls[len(m.Calls)-1], true
}
