package generation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderError_Kind(t *testing.T) {
	tests := []struct {
		name     string
		err      ProviderError
		expected ErrorKind
	}{
		{"plain failure", ProviderError{}, KindUnclassified},
		{"rate limited", ProviderError{RateLimited: true}, KindRateLimited},
		{"quota exhausted", ProviderError{QuotaExhausted: true}, KindQuotaExhausted},
		{"both signals", ProviderError{RateLimited: true, QuotaExhausted: true}, KindQuotaExhausted},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Kind())
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "unclassified", KindUnclassified.String())
	assert.Equal(t, "rate_limited", KindRateLimited.String())
	assert.Equal(t, "quota_exhausted", KindQuotaExhausted.String())
}

func TestProviderError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &ProviderError{Provider: "groq", Model: "llama", Message: "boom", Err: cause}

	assert.Equal(t, "groq llama: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestAsProviderError(t *testing.T) {
	t.Run("wraps unclassified errors", func(t *testing.T) {
		cause := errors.New("connection reset")
		pe := asProviderError("groq", "llama", cause)

		assert.Equal(t, "groq", pe.Provider)
		assert.Equal(t, "llama", pe.Model)
		assert.Equal(t, "connection reset", pe.Message)
		assert.Equal(t, KindUnclassified, pe.Kind())
		assert.ErrorIs(t, pe, cause)
	})

	t.Run("keeps classification through wrapping", func(t *testing.T) {
		original := &ProviderError{Message: "429", RateLimited: true}
		wrapped := fmt.Errorf("adapter: %w", original)

		pe := asProviderError("gemini", "gemini-1.5-flash", wrapped)

		require.NotNil(t, pe)
		assert.True(t, pe.IsRateLimited())
		assert.False(t, pe.IsQuotaExhausted())
		assert.Equal(t, "gemini", pe.Provider)
		assert.Equal(t, "gemini-1.5-flash", pe.Model)
		assert.Empty(t, original.Provider, "caller's error must not be mutated")
	})
}
