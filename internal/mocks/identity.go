package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/omnistudy/internal/domain"
)

// MockIdentityProvider implements api.IdentityProvider for testing
type MockIdentityProvider struct {
	// SignInFn allows test cases to mock the SignIn behavior
	SignInFn func(ctx context.Context, email, password string) (*domain.User, error)

	// SignUpFn allows test cases to mock the SignUp behavior
	SignUpFn func(ctx context.Context, name, email, password string) (*domain.User, error)

	// Default values used when functions aren't explicitly defined
	User *domain.User
	Err  error

	mu          sync.Mutex
	signInCalls []string
	signUpCalls []string
}

// SignIn implements the api.IdentityProvider interface
func (m *MockIdentityProvider) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	m.mu.Lock()
	m.signInCalls = append(m.signInCalls, email)
	m.mu.Unlock()

	if m.SignInFn != nil {
		return m.SignInFn(ctx, email, password)
	}
	return m.User, m.Err
}

// SignUp implements the api.IdentityProvider interface
func (m *MockIdentityProvider) SignUp(ctx context.Context, name, email, password string) (*domain.User, error) {
	m.mu.Lock()
	m.signUpCalls = append(m.signUpCalls, email)
	m.mu.Unlock()

	if m.SignUpFn != nil {
		return m.SignUpFn(ctx, name, email, password)
	}
	return m.User, m.Err
}

// SignInCalls returns the emails passed to SignIn, in order
func (m *MockIdentityProvider) SignInCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.signInCalls...)
}

// SignUpCalls returns the emails passed to SignUp, in order
func (m *MockIdentityProvider) SignUpCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.signUpCalls...)
}
