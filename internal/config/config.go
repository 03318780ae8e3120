package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Identity IdentityConfig `mapstructure:"identity" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// RequestTimeoutSeconds bounds a whole study request, including provider backoff
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"gt=0"`
}

// RequestTimeout returns the request timeout as a duration.
func (c ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// TokenLifetime returns the access token lifetime as a duration.
func (c AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeMinutes) * time.Minute
}

// IdentityConfig configures the hosted email/password identity service.
// An empty APIKey disables registration and login.
type IdentityConfig struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gt=0"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	// BackoffUnitMS is the length of one backoff step in milliseconds
	BackoffUnitMS int `mapstructure:"backoff_unit_ms" validate:"gte=0"`

	Groq   GroqConfig   `mapstructure:"groq"`
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// BackoffUnit returns the backoff unit as a duration.
func (c LLMConfig) BackoffUnit() time.Duration {
	return time.Duration(c.BackoffUnitMS) * time.Millisecond
}

// GroqConfig configures the primary, OpenAI-compatible provider.
// An empty APIKey leaves the primary tier unconfigured.
type GroqConfig struct {
	APIKey     string   `mapstructure:"api_key"`
	BaseURL    string   `mapstructure:"base_url" validate:"required,url"`
	Models     []string `mapstructure:"models" validate:"required,min=1,dive,required"`
	MaxRetries int      `mapstructure:"max_retries" validate:"gte=1"`
	// Temperature must be positive: a zero value is dropped from the request
	// body and the backend falls back to its own default
	Temperature    float32 `mapstructure:"temperature" validate:"gt=0,lte=2"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"gt=0"`
}

// Configured reports whether the provider has credentials.
func (c GroqConfig) Configured() bool {
	return c.APIKey != ""
}

// GeminiConfig configures the secondary provider.
// An empty APIKey leaves the secondary tier unconfigured.
type GeminiConfig struct {
	APIKey         string   `mapstructure:"api_key"`
	Models         []string `mapstructure:"models" validate:"required,min=1,dive,required"`
	MaxRetries     int      `mapstructure:"max_retries" validate:"gte=1"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds" validate:"gt=0"`
}

// Configured reports whether the provider has credentials.
func (c GeminiConfig) Configured() bool {
	return c.APIKey != ""
}
