package auth

import "errors"

// Token errors. The middleware maps ErrExpiredToken to its own message and
// every other validation failure to a generic 401.
var (
	// ErrInvalidToken covers bad signatures, wrong algorithms, wrong token
	// types and malformed claims
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the nbf claim is in the future
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrEmptySubject is returned when a token is requested for a user without an ID
	ErrEmptySubject = errors.New("token subject cannot be empty")
)
