package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/omnistudy/internal/config"
	"github.com/phrazzld/omnistudy/internal/generation"
	"google.golang.org/genai"
)

// ProviderName identifies this adapter in outcomes, logs and metrics.
const ProviderName = "gemini"

// jsonMIMEType asks the API for a JSON body when the caller will parse one.
const jsonMIMEType = "application/json"

// contentGenerator is the subset of the genai client the provider uses.
// *genai.Models satisfies it.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Provider implements generation.Provider using Google's Gemini API.
type Provider struct {
	// logger is used for structured logging
	logger *slog.Logger

	// models is the Gemini API client for making requests
	models contentGenerator

	// timeout bounds a single GenerateContent call; zero means no bound
	timeout time.Duration
}

// NewProvider creates a Provider from the secondary provider configuration.
//
// Parameters:
//   - ctx: Context for client initialization
//   - logger: A structured logger for operation logging
//   - cfg: Gemini configuration containing the API key and timeout
//
// Returns:
//   - A properly initialized Provider or an error if initialization fails
func NewProvider(ctx context.Context, logger *slog.Logger, cfg config.GeminiConfig) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return newProvider(logger, client.Models, time.Duration(cfg.TimeoutSeconds)*time.Second), nil
}

func newProvider(logger *slog.Logger, models contentGenerator, timeout time.Duration) *Provider {
	return &Provider{
		logger:  logger,
		models:  models,
		timeout: timeout,
	}
}

// Name implements generation.Provider.
func (p *Provider) Name() string {
	return ProviderName
}

// Complete implements generation.Provider with a single GenerateContent call.
func (p *Provider) Complete(ctx context.Context, model string, req generation.Request) (string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return "", generation.ErrEmptyPrompt
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	var genConfig *genai.GenerateContentConfig
	if req.Shape == generation.ShapeJSONArray {
		genConfig = &genai.GenerateContentConfig{ResponseMIMEType: jsonMIMEType}
	}

	resp, err := p.models.GenerateContent(ctx, model, buildContents(req), genConfig)
	if err != nil {
		return "", classifyError(model, err)
	}

	return p.extractText(ctx, model, resp)
}

// buildContents renders the request as a single user turn.
func buildContents(req generation.Request) []*genai.Content {
	parts := []*genai.Part{{Text: req.Prompt}}
	if req.Image != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: req.Image.MIMEType,
				Data:     req.Image.Data,
			},
		})
	}

	return []*genai.Content{{Role: "user", Parts: parts}}
}

// extractText concatenates the text parts of the first candidate.
func (p *Provider) extractText(ctx context.Context, model string, resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", emptyError(model)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", blockedError(model, string(resp.PromptFeedback.BlockReason))
	}

	if len(resp.Candidates) == 0 {
		return "", emptyError(model)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", blockedError(model, string(candidate.FinishReason))
	}
	if candidate.Content == nil {
		return "", emptyError(model)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	p.logger.DebugContext(ctx, "gemini completion received",
		"model", model,
		"finish_reason", string(candidate.FinishReason),
		"response_length", len(text))

	return text, nil
}

// Ensure Provider implements generation.Provider.
var _ generation.Provider = (*Provider)(nil)
