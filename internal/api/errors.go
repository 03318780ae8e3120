package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/omnistudy/internal/domain"
	"github.com/phrazzld/omnistudy/internal/generation"
	"github.com/phrazzld/omnistudy/internal/platform/firebase"
	"github.com/phrazzld/omnistudy/internal/service/auth"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var failure *generation.Failure

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, firebase.ErrEmailNotFound),
		errors.Is(err, firebase.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Conflict errors
	case errors.Is(err, firebase.ErrEmailExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, generation.ErrEmptyPrompt),
		errors.Is(err, firebase.ErrWeakPassword):
		return http.StatusBadRequest

	case errors.Is(err, firebase.ErrTooManyAttempts):
		return http.StatusTooManyRequests

	// Upstream unavailable: no provider or identity service could serve the request
	case errors.Is(err, firebase.ErrNotConfigured),
		errors.As(err, &failure):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var failure *generation.Failure
	var verr *domain.ValidationError

	switch {
	// The consolidated diagnostic is built from redacted provider messages
	case errors.As(err, &failure):
		return failure.Summary()

	case errors.As(err, &verr):
		return "Invalid " + verr.Field + ": " + verr.Message

	case errors.Is(err, domain.ErrEmptyContent):
		field, _, found := strings.Cut(err.Error(), ":")
		if found {
			return "Invalid " + field + ": required field"
		}
		return "Content cannot be empty"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, firebase.ErrEmailNotFound),
		errors.Is(err, firebase.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, firebase.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, firebase.ErrWeakPassword):
		return "Password is too weak"

	case errors.Is(err, firebase.ErrTooManyAttempts):
		return "Too many attempts, try again later"

	case errors.Is(err, firebase.ErrNotConfigured):
		return "Authentication is not configured"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator output into a short message that
// names the field without echoing its value.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min", "gte":
		return "too short or too small"
	case "max", "lte":
		return "too long or too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
