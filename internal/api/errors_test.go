package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/omnistudy/internal/domain"
	"github.com/phrazzld/omnistudy/internal/generation"
	"github.com/phrazzld/omnistudy/internal/platform/firebase"
	"github.com/phrazzld/omnistudy/internal/service/auth"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	failure := &generation.Failure{Attempts: []generation.AttemptError{
		{Provider: "groq", Model: "llama-3.3-70b-versatile", Message: "Error code: 429"},
	}}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", fmt.Errorf("validate: %w", auth.ErrExpiredToken), http.StatusUnauthorized},
		{"wrong password", firebase.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unknown email", firebase.ErrEmailNotFound, http.StatusUnauthorized},
		{"email taken", firebase.ErrEmailExists, http.StatusConflict},
		{"weak password", firebase.ErrWeakPassword, http.StatusBadRequest},
		{"too many attempts", firebase.ErrTooManyAttempts, http.StatusTooManyRequests},
		{"identity not configured", firebase.ErrNotConfigured, http.StatusServiceUnavailable},
		{"validation", domain.NewValidationError("count", "must be between 1 and 10"), http.StatusBadRequest},
		{"empty content", domain.RequireText("topic", ""), http.StatusBadRequest},
		{"provider failure", failure, http.StatusServiceUnavailable},
		{"no providers", &generation.Failure{Cause: generation.ErrNoProviders}, http.StatusServiceUnavailable},
		{"context canceled", context.Canceled, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	failure := &generation.Failure{Attempts: []generation.AttemptError{
		{Provider: "groq", Model: "llama-3.3-70b-versatile", Message: "Error code: 429"},
		{Provider: "gemini", Model: "gemini-1.5-flash", Message: "limit: 0"},
	}}

	tests := []struct {
		name     string
		err      error
		want     string
		contains []string
	}{
		{name: "nil", err: nil, want: "An unexpected error occurred"},
		{name: "validation", err: domain.NewValidationError("count", "must be between 5 and 50"), want: "Invalid count: must be between 5 and 50"},
		{name: "empty content", err: domain.RequireText("concept", " "), want: "Invalid concept: required field"},
		{name: "expired", err: auth.ErrExpiredToken, want: "Token expired"},
		{name: "invalid", err: auth.ErrInvalidToken, want: "Invalid token"},
		{name: "credentials", err: firebase.ErrInvalidCredentials, want: "Invalid email or password"},
		{name: "email exists", err: firebase.ErrEmailExists, want: "Email already exists"},
		{name: "not configured", err: firebase.ErrNotConfigured, want: "Authentication is not configured"},
		{name: "no providers", err: &generation.Failure{Cause: generation.ErrNoProviders}, contains: []string{"GROQ_API_KEY", "GEMINI_API_KEY"}},
		{
			name:     "provider failure",
			err:      failure,
			contains: []string{"groq -> llama-3.3-70b-versatile: Error code: 429", "gemini -> gemini-1.5-flash: limit: 0"},
		},
		{name: "internal details hidden", err: errors.New("dial tcp 10.0.0.1:5432: refused"), want: "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := GetSafeErrorMessage(tc.err)
			if tc.want != "" {
				assert.Equal(t, tc.want, got)
			}
			for _, s := range tc.contains {
				assert.Contains(t, got, s)
			}
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name  string
		input interface{}
		want  string
	}{
		{"missing email", &LoginRequest{Password: "x"}, "Invalid email: required field"},
		{"bad email", &LoginRequest{Email: "nope", Password: "x"}, "Invalid email: invalid email format"},
		{"short password", &RegisterRequest{Email: "a@b.co", Password: "12345"}, "Invalid password: too short or too small"},
		{"count too high", &QuizRequest{Topic: "t", Count: 11}, "Invalid count: too long or too large"},
		{"bad enum", &MnemonicRequest{Concept: "c", Type: "Limerick"}, "Invalid type: invalid value"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.input)
			assert.Equal(t, tc.want, SanitizeValidationError(err))
		})
	}

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}

func TestRequestEnumsAcceptMultiWordValues(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.Struct(&MnemonicRequest{Concept: "planets", Type: domain.MnemonicLoci}))
	assert.NoError(t, v.Struct(&AnalyzeDocumentRequest{Content: "doc", Type: domain.AnalysisKeyPoints}))
	assert.NoError(t, v.Struct(&AnalyzeDocumentRequest{Content: "doc", Type: domain.AnalysisQuizGeneration}))
	assert.NoError(t, v.Struct(&StoryRequest{Topic: "t", Style: domain.StyleHistorical, Audience: domain.AudienceProfessionals}))
}
