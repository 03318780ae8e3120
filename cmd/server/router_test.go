package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/omnistudy/internal/api"
	"github.com/phrazzld/omnistudy/internal/api/middleware"
	"github.com/phrazzld/omnistudy/internal/config"
	"github.com/phrazzld/omnistudy/internal/generation"
	"github.com/phrazzld/omnistudy/internal/platform/logger"
	"github.com/phrazzld/omnistudy/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "debug", RequestTimeoutSeconds: 30},
		Auth: config.AuthConfig{
			JWTSecret:            "test-secret-that-is-at-least-32-characters",
			TokenLifetimeMinutes: 60,
		},
		Identity: config.IdentityConfig{
			BaseURL:        "https://identitytoolkit.googleapis.com/v1",
			TimeoutSeconds: 5,
		},
		LLM: config.LLMConfig{
			BackoffUnitMS: 0,
			Groq: config.GroqConfig{
				BaseURL:        "https://api.groq.com/openai/v1",
				Models:         []string{"llama-3.3-70b-versatile"},
				MaxRetries:     1,
				TimeoutSeconds: 5,
			},
			Gemini: config.GeminiConfig{
				Models:         []string{"gemini-1.5-flash"},
				MaxRetries:     1,
				TimeoutSeconds: 5,
			},
		},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) (*httptest.Server, *application) {
	t.Helper()

	log, _ := logger.GetTestLogger(t)
	app, err := newApplication(context.Background(), cfg, log)
	require.NoError(t, err)

	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)
	return srv, app
}

func authHeader(t *testing.T, app *application) string {
	t.Helper()

	token, _, err := app.jwtService.GenerateToken(context.Background(), auth.Subject{
		UserID: "uid-1",
		Email:  "ada@example.com",
		Name:   "Ada",
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(t *testing.T, method, url, authorization, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	resp := doRequest(t, http.MethodGet, srv.URL+"/health", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "OK", string(body))
	assert.NotEmpty(t, resp.Header.Get(middleware.TraceIDHeader))

	resp = doRequest(t, http.MethodGet, srv.URL+"/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `omnistudy_http_requests_total{method="GET",route="/health",status="200"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	for _, path := range []string{"/api/providers", "/api/auth/me"} {
		resp := doRequest(t, http.MethodGet, srv.URL+path, "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/study/explain", "Bearer nope", `{"concept":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_Providers(t *testing.T) {
	srv, app := newTestServer(t, testConfig())

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/providers", authHeader(t, app), "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status generation.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	require.Len(t, status.Tiers, 2)
	assert.Equal(t, "groq", status.Tiers[0].Provider)
	assert.Equal(t, "gemini", status.Tiers[1].Provider)
}

func TestRouter_StudyWithoutProviders(t *testing.T) {
	srv, app := newTestServer(t, testConfig())

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/study/explain", authHeader(t, app), `{"concept":"entropy"}`)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "GROQ_API_KEY")
	assert.Equal(t, resp.Header.Get(middleware.TraceIDHeader), body["trace_id"])
}

func TestRouter_LoginWithoutIdentityService(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/auth/login", "",
		`{"email":"ada@example.com","password":"secret1"}`)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRouter_ExplainServedByPrimaryProvider(t *testing.T) {
	groq := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gsk_test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "llama-3.3-70b-versatile",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "  Entropy measures disorder.  "}, "finish_reason": "stop"}]
		}`)
	}))
	t.Cleanup(groq.Close)

	cfg := testConfig()
	cfg.LLM.Groq.APIKey = "gsk_test"
	cfg.LLM.Groq.BaseURL = groq.URL
	srv, app := newTestServer(t, cfg)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/study/explain", authHeader(t, app), `{"concept":"entropy"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body api.TextResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, api.TextResponse{
		Text:     "Entropy measures disorder.",
		Provider: "groq",
		Model:    "llama-3.3-70b-versatile",
	}, body)
}
