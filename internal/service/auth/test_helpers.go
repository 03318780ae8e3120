package auth

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/omnistudy/internal/config"
	"github.com/stretchr/testify/require"
)

// DefaultJWTConfig returns a standard configuration for JWT authentication suitable for testing.
func DefaultJWTConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes: 60,
	}
}

// RequireTestJWTService creates a JWT service from DefaultJWTConfig.
func RequireTestJWTService(t *testing.T) JWTService {
	t.Helper()
	svc, err := NewJWTService(DefaultJWTConfig())
	require.NoError(t, err, "Failed to create test JWT service")
	return svc
}

// NewJWTServiceWithClock creates a JWT service whose notion of "now" is
// timeFunc, for testing expiry.
func NewJWTServiceWithClock(t *testing.T, lifetime time.Duration, timeFunc func() time.Time) JWTService {
	t.Helper()
	svc, err := newHMACJWTService(DefaultJWTConfig().JWTSecret, lifetime, timeFunc)
	require.NoError(t, err, "Failed to create test JWT service")
	return svc
}

// GenerateAuthHeaderForTestingT creates an Authorization header value with
// a valid token for userID, failing the test on error.
func GenerateAuthHeaderForTestingT(t *testing.T, userID string) string {
	t.Helper()
	token, _, err := RequireTestJWTService(t).GenerateToken(context.Background(), Subject{
		UserID: userID,
		Email:  userID + "@example.com",
	})
	require.NoError(t, err, "Failed to generate auth header")
	return "Bearer " + token
}
