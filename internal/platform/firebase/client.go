package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phrazzld/omnistudy/internal/config"
	"github.com/phrazzld/omnistudy/internal/domain"
	"github.com/phrazzld/omnistudy/internal/platform/logger"
)

// maxResponseBytes bounds how much of an identity response is read.
const maxResponseBytes = 1 << 20

// Client talks to the Identity Toolkit REST API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client from configuration. A client without an API key
// is valid; every call on it returns ErrNotConfigured.
func NewClient(log *slog.Logger, cfg config.IdentityConfig) (*Client, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil || cfg.BaseURL == "" {
		return nil, fmt.Errorf("invalid identity base URL %q", cfg.BaseURL)
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.With(slog.String("component", "identity")),
	}, nil
}

// Configured reports whether the client has an API key.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signUpRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	DisplayName       string `json:"displayName,omitempty"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type accountResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn verifies an email and password and returns the account.
func (c *Client) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	var resp accountResponse
	err := c.post(ctx, "accounts:signInWithPassword", signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return domain.NewUser(resp.LocalID, resp.Email, resp.DisplayName)
}

// SignUp creates an account and returns it. The display name is stored by
// the identity service.
func (c *Client) SignUp(ctx context.Context, name, email, password string) (*domain.User, error) {
	var resp accountResponse
	err := c.post(ctx, "accounts:signUp", signUpRequest{
		Email:             email,
		Password:          password,
		DisplayName:       name,
		ReturnSecureToken: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.DisplayName == "" {
		resp.DisplayName = name
	}
	return domain.NewUser(resp.LocalID, resp.Email, resp.DisplayName)
}

func (c *Client) post(ctx context.Context, method string, body, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	log := logger.FromContextOrDefault(ctx, c.logger)

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	endpoint := c.baseURL + "/" + method + "?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("identity request failed", "method", method, "error", scrubKey(err.Error(), c.apiKey))
		return fmt.Errorf("identity request %s failed: %s", method, scrubKey(err.Error(), c.apiKey))
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", method, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		_ = json.Unmarshal(data, &apiErr)
		mapped := mapErrorCode(resp.StatusCode, apiErr.Error.Message)
		log.Info("identity request rejected",
			"method", method,
			"status", resp.StatusCode,
			"code", apiErr.Error.Message)
		return mapped
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	return nil
}

// scrubKey keeps the API key, which travels in the query string, out of
// transport error messages.
func scrubKey(s, key string) string {
	if key == "" {
		return s
	}
	return strings.ReplaceAll(s, key, "[REDACTED_KEY]")
}
