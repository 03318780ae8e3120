package groq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/omnistudy/internal/config"
	"github.com/phrazzld/omnistudy/internal/generation"
	openai "github.com/sashabaranov/go-openai"
)

// ProviderName identifies this adapter in outcomes, logs and metrics.
const ProviderName = "groq"

// chatClient is the subset of the go-openai client the provider uses.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Provider implements generation.Provider against Groq's chat completions API.
type Provider struct {
	// logger is used for structured logging
	logger *slog.Logger

	// client is the OpenAI-compatible API client
	client chatClient

	// temperature is sent with every request
	temperature float32
}

// NewProvider creates a Provider from the primary provider configuration.
func NewProvider(logger *slog.Logger, cfg config.GroqConfig) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: groq API key cannot be empty", generation.ErrInvalidConfig)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.TimeoutSeconds > 0 {
		clientConfig.HTTPClient = &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		}
	}

	return &Provider{
		logger:      logger,
		client:      openai.NewClientWithConfig(clientConfig),
		temperature: cfg.Temperature,
	}, nil
}

// Name implements generation.Provider.
func (p *Provider) Name() string {
	return ProviderName
}

// Complete implements generation.Provider with a single chat completion call.
func (p *Provider) Complete(ctx context.Context, model string, req generation.Request) (string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return "", generation.ErrEmptyPrompt
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    []openai.ChatCompletionMessage{userMessage(req)},
		Temperature: p.temperature,
	})
	if err != nil {
		return "", classifyError(model, err)
	}

	if len(resp.Choices) == 0 {
		return "", &generation.ProviderError{
			Provider: ProviderName,
			Model:    model,
			Message:  generation.ErrEmptyResponse.Error(),
			Err:      generation.ErrEmptyResponse,
		}
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	p.logger.DebugContext(ctx, "groq completion received",
		"model", model,
		"finish_reason", string(resp.Choices[0].FinishReason),
		"completion_tokens", resp.Usage.CompletionTokens,
		"response_length", len(text))

	return text, nil
}

// userMessage builds the single user turn. Images are sent as a data URL
// part next to the prompt text.
func userMessage(req generation.Request) openai.ChatCompletionMessage {
	if req.Image == nil {
		return openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: req.Prompt,
		}
	}

	return openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{
				Type: openai.ChatMessagePartTypeText,
				Text: req.Prompt,
			},
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    req.Image.DataURL(),
					Detail: openai.ImageURLDetailAuto,
				},
			},
		},
	}
}

// classifyError maps a go-openai error onto the provider error taxonomy.
// Any 429 is a rate limit; an insufficient_quota code additionally marks
// quota exhaustion.
func classifyError(model string, err error) *generation.ProviderError {
	pe := &generation.ProviderError{
		Provider: ProviderName,
		Model:    model,
		Message:  err.Error(),
		Err:      err,
	}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		pe.Message = fmt.Sprintf("Error code: %d - %s", apiErr.HTTPStatusCode, apiErr.Message)
		pe.RateLimited = apiErr.HTTPStatusCode == http.StatusTooManyRequests
		pe.QuotaExhausted = isQuotaCode(apiErr.Code) || apiErr.Type == "insufficient_quota"
	case errors.As(err, &reqErr):
		pe.RateLimited = reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}

	if !pe.RateLimited && strings.Contains(pe.Message, "429") {
		pe.RateLimited = true
	}

	return pe
}

func isQuotaCode(code any) bool {
	s, ok := code.(string)
	return ok && s == "insufficient_quota"
}

// Ensure Provider implements generation.Provider.
var _ generation.Provider = (*Provider)(nil)
