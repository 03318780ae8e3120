package auth

import (
	"context"
	"time"
)

// JWTService issues and validates the access tokens that authenticate study
// requests once the identity service has accepted a user's credentials.
type JWTService interface {
	// GenerateToken creates a signed access token for the user and returns
	// it together with its expiry time.
	GenerateToken(ctx context.Context, user Subject) (string, time.Time, error)

	// ValidateToken validates the provided access token string and extracts the claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Subject is the identity a token is issued for.
type Subject struct {
	// UserID is the identity service's local ID for the user
	UserID string
	Email  string
	Name   string
}

// Claims represents the validated contents of an access token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID string `json:"uid,omitempty"`

	// Email and Name are carried so handlers need no user lookup.
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
