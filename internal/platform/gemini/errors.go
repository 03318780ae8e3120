package gemini

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/omnistudy/internal/generation"
	"google.golang.org/genai"
)

// classifyError maps a genai error onto the provider error taxonomy.
// Quota exhaustion is detected from the status and message text because
// the API reports a zero free-tier limit and a spent daily quota with the
// same 429 code as a transient rate limit.
func classifyError(model string, err error) *generation.ProviderError {
	pe := &generation.ProviderError{
		Provider: ProviderName,
		Model:    model,
		Message:  err.Error(),
		Err:      err,
	}

	code := 0
	status := ""
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		code, status = apiErr.Code, apiErr.Status
	}

	lower := strings.ToLower(pe.Message)
	pe.QuotaExhausted = strings.EqualFold(status, "RESOURCE_EXHAUSTED") ||
		strings.Contains(lower, "limit: 0") ||
		strings.Contains(lower, "resource_exhausted")
	pe.RateLimited = code == http.StatusTooManyRequests || strings.Contains(pe.Message, "429")

	return pe
}

// blockedError reports a response withheld by safety filters.
func blockedError(model, reason string) *generation.ProviderError {
	return &generation.ProviderError{
		Provider: ProviderName,
		Model:    model,
		Message:  generation.ErrContentBlocked.Error() + ": " + reason,
		Err:      generation.ErrContentBlocked,
	}
}

// emptyError reports a response without any usable candidate.
func emptyError(model string) *generation.ProviderError {
	return &generation.ProviderError{
		Provider: ProviderName,
		Model:    model,
		Message:  generation.ErrEmptyResponse.Error(),
		Err:      generation.ErrEmptyResponse,
	}
}
