package firebase

import (
	"errors"
	"strings"
)

// Identity errors, mapped from the Identity Toolkit error codes.
var (
	// ErrNotConfigured is returned when no web API key is configured
	ErrNotConfigured = errors.New("identity service is not configured")

	// ErrEmailNotFound is returned when no account exists for the email
	ErrEmailNotFound = errors.New("no account exists for this email")

	// ErrInvalidCredentials is returned when the password does not match
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailExists is returned when registering an email that is already in use
	ErrEmailExists = errors.New("email already registered")

	// ErrWeakPassword is returned when the identity service rejects the password
	ErrWeakPassword = errors.New("password is too weak")

	// ErrTooManyAttempts is returned when the account is temporarily locked
	ErrTooManyAttempts = errors.New("too many attempts, try again later")
)

// APIError is an error answer from the identity service that maps to no
// sentinel.
type APIError struct {
	StatusCode int
	Code       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return "identity service error: " + e.Code
}

// mapErrorCode converts an Identity Toolkit message such as
// "WEAK_PASSWORD : Password should be at least 6 characters" to an error.
func mapErrorCode(status int, message string) error {
	code, _, _ := strings.Cut(message, ":")
	code = strings.TrimSpace(code)

	switch code {
	case "EMAIL_NOT_FOUND":
		return ErrEmailNotFound
	case "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "INVALID_EMAIL", "USER_DISABLED":
		return ErrInvalidCredentials
	case "EMAIL_EXISTS":
		return ErrEmailExists
	case "WEAK_PASSWORD":
		return ErrWeakPassword
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return ErrTooManyAttempts
	default:
		if code == "" {
			code = "UNKNOWN"
		}
		return &APIError{StatusCode: status, Code: code}
	}
}
