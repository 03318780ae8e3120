package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/omnistudy/internal/generation"
)

// MockGenerator implements service.Generator for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, req generation.Request) generation.Outcome

	// Default outcome returned when GenerateFn is nil
	Outcome generation.Outcome

	// Status is returned by Describe
	Status generation.Status

	// Call tracking for verification
	GenerateCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Generate was called
		Count int

		// Requests contains every request passed to Generate
		Requests []generation.Request
	}
}

// Generate implements the service.Generator interface
func (m *MockGenerator) Generate(ctx context.Context, req generation.Request) generation.Outcome {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.Requests = append(m.GenerateCalls.Requests, req)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, req)
	}
	return m.Outcome
}

// Describe implements service.Describer
func (m *MockGenerator) Describe() generation.Status {
	return m.Status
}

// CallCount returns how many times Generate was called
func (m *MockGenerator) CallCount() int {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return m.GenerateCalls.Count
}

// LastRequest returns the most recent request, or the zero Request
func (m *MockGenerator) LastRequest() generation.Request {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	if len(m.GenerateCalls.Requests) == 0 {
		return generation.Request{}
	}
	return m.GenerateCalls.Requests[len(m.GenerateCalls.Requests)-1]
}

// NewMockGeneratorWithText creates a MockGenerator whose every call succeeds
// with text served by provider/model
func NewMockGeneratorWithText(text, provider, model string) *MockGenerator {
	return &MockGenerator{
		Outcome: generation.Outcome{
			Success:  &generation.Success{Text: text, Provider: provider, Model: model},
			Attempts: 1,
		},
	}
}

// NewMockGeneratorWithFailure creates a MockGenerator whose every call fails
// with the given diagnostics
func NewMockGeneratorWithFailure(attempts ...generation.AttemptError) *MockGenerator {
	return &MockGenerator{
		Outcome: generation.Outcome{
			Failure:  &generation.Failure{Attempts: attempts},
			Attempts: len(attempts),
		},
	}
}

// NewMockGeneratorWithoutProviders creates a MockGenerator that behaves like
// a gateway with no configured tier
func NewMockGeneratorWithoutProviders() *MockGenerator {
	return &MockGenerator{
		Outcome: generation.Outcome{
			Failure: &generation.Failure{Cause: generation.ErrNoProviders},
		},
	}
}

// Reset resets the call tracking state
func (m *MockGenerator) Reset() {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()

	m.GenerateCalls.Count = 0
	m.GenerateCalls.Requests = nil
}
