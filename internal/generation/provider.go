package generation

import (
	"context"
	"fmt"
	"strings"
)

// Provider wraps a single backend's call convention behind one operation.
// Implementations must not retry: the Gateway coordinates retries across
// models and providers. Failures should be returned as *ProviderError with
// the rate-limit and quota signals set from the backend's error payload.
type Provider interface {
	// Name identifies the provider in outcomes, logs and metrics.
	Name() string

	// Complete sends req to model and returns the first textual completion,
	// trimmed of surrounding whitespace.
	Complete(ctx context.Context, model string, req Request) (string, error)
}

// ProviderSpec is the static configuration of one provider tier.
type ProviderSpec struct {
	// Name labels the tier; it defaults to the provider's own name
	Name string

	// Models is the ordered candidate list, most preferred first
	Models []string

	// MaxRetries is the number of attempts per model, at least 1
	MaxRetries int
}

// Validate reports a spec with no models or a retry budget below one.
func (s ProviderSpec) Validate() error {
	if len(s.Models) == 0 {
		return fmt.Errorf("%w: provider %q has no model candidates", ErrInvalidConfig, s.Name)
	}
	for i, m := range s.Models {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("%w: provider %q model %d is blank", ErrInvalidConfig, s.Name, i)
		}
	}
	if s.MaxRetries < 1 {
		return fmt.Errorf("%w: provider %q max retries must be at least 1, got %d",
			ErrInvalidConfig, s.Name, s.MaxRetries)
	}
	return nil
}
