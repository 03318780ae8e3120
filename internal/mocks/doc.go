// Package mocks provides hand-written test doubles for the interfaces the
// services and handlers depend on: the completion gateway, single providers,
// the identity service and the JWT service.
//
// Each mock takes optional function fields for per-test behaviour and falls
// back to fixed return values. The generator, provider and identity mocks
// also record their calls so tests can assert on what reached the dependency.
//
// Usage:
//
// Import the mocks package in your test file and create the required mock:
//
//	import "github.com/phrazzld/omnistudy/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    gen := mocks.NewMockGeneratorWithText("answer", "groq", "llama-3.3-70b-versatile")
//
//	    // Use the mock in your test...
//	    assert.Equal(t, 1, gen.CallCount())
//	}
//
// New mocks go in a file named after the interface they implement.
package mocks
