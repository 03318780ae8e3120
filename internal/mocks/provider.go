package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/omnistudy/internal/generation"
)

// MockProvider implements generation.Provider for testing
type MockProvider struct {
	// ProviderName is returned by Name; it defaults to "mock"
	ProviderName string

	// CompleteFn allows test cases to mock the Complete behavior
	CompleteFn func(ctx context.Context, model string, req generation.Request) (string, error)

	// Default response values
	Text string
	Err  error

	// Call tracking for verification
	CompleteCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Complete was called
		Count int

		// Models contains the model passed to each Complete call
		Models []string

		// Requests contains all requests passed to Complete calls
		Requests []generation.Request
	}
}

// Name implements the generation.Provider interface
func (m *MockProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// Complete implements the generation.Provider interface
func (m *MockProvider) Complete(ctx context.Context, model string, req generation.Request) (string, error) {
	m.CompleteCalls.mu.Lock()
	m.CompleteCalls.Count++
	m.CompleteCalls.Models = append(m.CompleteCalls.Models, model)
	m.CompleteCalls.Requests = append(m.CompleteCalls.Requests, req)
	m.CompleteCalls.mu.Unlock()

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, model, req)
	}

	return m.Text, m.Err
}

// CallCount returns the number of Complete calls so far
func (m *MockProvider) CallCount() int {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()
	return m.CompleteCalls.Count
}

// CalledModels returns the models passed to Complete, in call order
func (m *MockProvider) CalledModels() []string {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()
	return append([]string(nil), m.CompleteCalls.Models...)
}

// LastRequest returns the most recent request, or the zero Request if none
func (m *MockProvider) LastRequest() generation.Request {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()
	if len(m.CompleteCalls.Requests) == 0 {
		return generation.Request{}
	}
	return m.CompleteCalls.Requests[len(m.CompleteCalls.Requests)-1]
}

// NewMockProvider creates a MockProvider with the given name and no default response
func NewMockProvider(name string) *MockProvider {
	return &MockProvider{ProviderName: name}
}

// NewMockProviderWithText creates a MockProvider that always succeeds with text
func NewMockProviderWithText(name, text string) *MockProvider {
	return &MockProvider{ProviderName: name, Text: text}
}

// NewMockProviderWithError creates a MockProvider that always fails with err
func NewMockProviderWithError(name string, err error) *MockProvider {
	return &MockProvider{ProviderName: name, Err: err}
}

// NewScriptedProvider creates a MockProvider that replays results per model.
// Each call to a model consumes the next entry of its script; once the
// script is exhausted the last entry repeats. A nil error entry means success
// with text. Models without a script succeed with text.
func NewScriptedProvider(name, text string, script map[string][]error) *MockProvider {
	var mu sync.Mutex
	calls := make(map[string]int)

	return &MockProvider{
		ProviderName: name,
		CompleteFn: func(_ context.Context, model string, _ generation.Request) (string, error) {
			mu.Lock()
			n := calls[model]
			calls[model]++
			mu.Unlock()

			results, ok := script[model]
			if !ok || len(results) == 0 {
				return text, nil
			}
			if n >= len(results) {
				n = len(results) - 1
			}
			if err := results[n]; err != nil {
				return "", err
			}
			return text, nil
		},
	}
}

// RecordingSleeper is a generation.Sleeper that records requested waits
// without blocking.
type RecordingSleeper struct {
	mu    sync.Mutex
	waits []time.Duration

	// Err, when set, is returned from every call
	Err error
}

// Sleep records d and returns r.Err
func (r *RecordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.waits = append(r.waits, d)
	return r.Err
}

// Waits returns the recorded waits in order
func (r *RecordingSleeper) Waits() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.waits...)
}
