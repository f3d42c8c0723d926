package llm

import (
	"context"
	"sync"
)

// MockProvider is a scriptable Provider for tests and local runs without
// credentials.
type MockProvider struct {
	mu sync.Mutex
	// GenerateFunc, when set, handles every call. Otherwise a canned reply is
	// returned.
	GenerateFunc func(ctx context.Context, req Request) (string, error)
	calls        []Request
}

// Generate implements Provider.
func (m *MockProvider) Generate(ctx context.Context, req Request) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	fn := m.GenerateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	return "Take a ten minute walk after lunch to reset your focus.", nil
}

// Calls returns a copy of the requests seen so far.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times Generate ran.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
