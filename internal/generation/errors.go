package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package
var (
	// ErrInvalidConfig is returned when a gateway or adapter is misconfigured
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrEmptyPrompt is returned when a request carries no prompt text
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrEmptyResponse is returned when a provider answers without any completion
	ErrEmptyResponse = errors.New("no completion in provider response")

	// ErrContentBlocked is returned when the provider blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrNoProviders is the cause of a Failure when no tier has a configured provider
	ErrNoProviders = errors.New("no AI provider configured")
)

// ErrorKind is the three-way failure taxonomy the gateway acts on.
type ErrorKind int

const (
	// KindUnclassified failures are treated as non-retryable for the model.
	KindUnclassified ErrorKind = iota
	// KindRateLimited failures are transient; the same model may be retried after a backoff.
	KindRateLimited
	// KindQuotaExhausted failures will not resolve by waiting.
	KindQuotaExhausted
)

// String returns the label used in logs and metrics.
func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindQuotaExhausted:
		return "quota_exhausted"
	default:
		return "unclassified"
	}
}

// ProviderError is the uniform failure every adapter returns. Adapters set
// RateLimited and QuotaExhausted from the backend's own error payload; a
// single error may carry both signals, and the retry policy of the tier
// decides which one wins.
type ProviderError struct {
	// Provider is the name of the adapter that failed
	Provider string

	// Model is the model identifier that was called
	Model string

	// Message is the backend's error text
	Message string

	// RateLimited reports a transient rate-limit signal (e.g. HTTP 429)
	RateLimited bool

	// QuotaExhausted reports that the model or project has no quota left
	QuotaExhausted bool

	// Err is the underlying error, if any
	Err error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Provider, e.Model, e.Message)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsRateLimited reports whether the failure is a transient rate limit.
func (e *ProviderError) IsRateLimited() bool {
	return e.RateLimited
}

// IsQuotaExhausted reports whether the model's quota is exhausted.
func (e *ProviderError) IsQuotaExhausted() bool {
	return e.QuotaExhausted
}

// Kind collapses the two signals into one label, quota exhaustion first.
func (e *ProviderError) Kind() ErrorKind {
	switch {
	case e.QuotaExhausted:
		return KindQuotaExhausted
	case e.RateLimited:
		return KindRateLimited
	default:
		return KindUnclassified
	}
}

// asProviderError returns err as a *ProviderError, wrapping anything an
// adapter failed to classify as an unclassified failure for provider/model.
func asProviderError(provider, model string, err error) *ProviderError {
	var pe *ProviderError
	if errors.As(err, &pe) {
		classified := *pe
		if classified.Provider == "" {
			classified.Provider = provider
		}
		if classified.Model == "" {
			classified.Model = model
		}
		return &classified
	}
	return &ProviderError{
		Provider: provider,
		Model:    model,
		Message:  err.Error(),
		Err:      err,
	}
}
