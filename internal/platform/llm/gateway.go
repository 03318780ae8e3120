// Package llm assembles the completion gateway from configuration: the
// OpenAI-compatible primary tier followed by the Gemini secondary tier.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/omnistudy/internal/config"
	"github.com/phrazzld/omnistudy/internal/generation"
	"github.com/phrazzld/omnistudy/internal/platform/gemini"
	"github.com/phrazzld/omnistudy/internal/platform/groq"
)

// NewGateway builds the two provider tiers in priority order. A provider
// without an API key stays in the list as an unconfigured tier so that
// Describe still reports it.
func NewGateway(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
	opts ...generation.Option,
) (*generation.Gateway, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	primary := generation.Tier{
		Spec: generation.ProviderSpec{
			Name:       groq.ProviderName,
			Models:     cfg.Groq.Models,
			MaxRetries: cfg.Groq.MaxRetries,
		},
		Policy: generation.PrimaryPolicy,
	}
	if cfg.Groq.Configured() {
		p, err := groq.NewProvider(logger.With("component", "groq_provider"), cfg.Groq)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize groq provider: %w", err)
		}
		primary.Provider = p
	}

	secondary := generation.Tier{
		Spec: generation.ProviderSpec{
			Name:       gemini.ProviderName,
			Models:     cfg.Gemini.Models,
			MaxRetries: cfg.Gemini.MaxRetries,
		},
		Policy: generation.SecondaryPolicy,
	}
	if cfg.Gemini.Configured() {
		p, err := gemini.NewProvider(ctx, logger.With("component", "gemini_provider"), cfg.Gemini)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini provider: %w", err)
		}
		secondary.Provider = p
	}

	if primary.Provider == nil && secondary.Provider == nil {
		logger.Warn("no AI provider configured; study requests will fail until GROQ_API_KEY or GEMINI_API_KEY is set")
	}

	opts = append([]generation.Option{generation.WithBackoffUnit(cfg.BackoffUnit())}, opts...)

	return generation.NewGateway(
		logger.With("component", "generation_gateway"),
		[]generation.Tier{primary, secondary},
		opts...,
	)
}
