package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/omnistudy/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSubject = Subject{UserID: "firebase-uid-123", Email: "ada@example.com", Name: "Ada"}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: DefaultJWTConfig().JWTSecret})
	assert.Error(t, err, "zero lifetime must be rejected")

	svc, err := NewJWTService(DefaultJWTConfig())
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 60 * time.Minute
	svc := NewJWTServiceWithClock(t, lifetime, func() time.Time { return fixedTime })

	token, expiresAt, err := svc.GenerateToken(context.Background(), testSubject)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, fixedTime.Add(lifetime), expiresAt)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, testSubject.UserID, claims.UserID)
	assert.Equal(t, testSubject.UserID, claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateToken_RequiresUserID(t *testing.T) {
	t.Parallel()

	_, _, err := RequireTestJWTService(t).GenerateToken(context.Background(), Subject{Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrEmptySubject)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 60 * time.Minute
	at := func(ts time.Time) func() time.Time { return func() time.Time { return ts } }

	tests := []struct {
		name      string
		setupFunc func(t *testing.T) (JWTService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func(t *testing.T) (JWTService, string) {
				svc := NewJWTServiceWithClock(t, lifetime, at(fixedTime))
				token, _, _ := svc.GenerateToken(context.Background(), testSubject)
				return svc, token
			},
		},
		{
			name: "expired token",
			setupFunc: func(t *testing.T) (JWTService, string) {
				gen := NewJWTServiceWithClock(t, lifetime, at(fixedTime))
				token, _, _ := gen.GenerateToken(context.Background(), testSubject)
				return NewJWTServiceWithClock(t, lifetime, at(fixedTime.Add(lifetime+time.Hour))), token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "within clock skew",
			setupFunc: func(t *testing.T) (JWTService, string) {
				gen := NewJWTServiceWithClock(t, lifetime, at(fixedTime))
				token, _, _ := gen.GenerateToken(context.Background(), testSubject)
				return NewJWTServiceWithClock(t, lifetime, at(fixedTime.Add(lifetime+time.Minute))), token
			},
		},
		{
			name: "not yet valid",
			setupFunc: func(t *testing.T) (JWTService, string) {
				gen := NewJWTServiceWithClock(t, lifetime, at(fixedTime.Add(time.Hour)))
				token, _, _ := gen.GenerateToken(context.Background(), testSubject)
				return NewJWTServiceWithClock(t, lifetime, at(fixedTime)), token
			},
			wantErr: ErrTokenNotYetValid,
		},
		{
			name: "invalid signature",
			setupFunc: func(t *testing.T) (JWTService, string) {
				other, err := newHMACJWTService("another-secret-that-is-long-enough-for-it", lifetime, at(fixedTime))
				require.NoError(t, err)
				token, _, _ := other.GenerateToken(context.Background(), testSubject)
				return NewJWTServiceWithClock(t, lifetime, at(fixedTime)), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setupFunc: func(t *testing.T) (JWTService, string) {
				return NewJWTServiceWithClock(t, lifetime, at(fixedTime)), "this.is.not.a.valid.jwt.token"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "missing token",
			setupFunc: func(t *testing.T) (JWTService, string) {
				return NewJWTServiceWithClock(t, lifetime, at(fixedTime)), ""
			},
			wantErr: ErrMissingToken,
		},
		{
			name: "wrong token type",
			setupFunc: func(t *testing.T) (JWTService, string) {
				claims := jwtCustomClaims{
					UserID:    testSubject.UserID,
					TokenType: "refresh",
					RegisteredClaims: jwt.RegisteredClaims{
						IssuedAt:  jwt.NewNumericDate(fixedTime),
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(lifetime)),
					},
				}
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
					SignedString([]byte(DefaultJWTConfig().JWTSecret))
				require.NoError(t, err)
				return NewJWTServiceWithClock(t, lifetime, at(fixedTime)), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "none algorithm",
			setupFunc: func(t *testing.T) (JWTService, string) {
				claims := jwtCustomClaims{UserID: testSubject.UserID, TokenType: accessTokenType}
				token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
					SignedString(jwt.UnsafeAllowNoneSignatureType)
				require.NoError(t, err)
				return NewJWTServiceWithClock(t, lifetime, at(fixedTime)), token
			},
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, token := tt.setupFunc(t)
			claims, err := svc.ValidateToken(context.Background(), token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testSubject.UserID, claims.UserID)
		})
	}
}

func TestGenerateAuthHeaderForTestingT(t *testing.T) {
	header := GenerateAuthHeaderForTestingT(t, "uid-1")
	assert.Contains(t, header, "Bearer ")
}
