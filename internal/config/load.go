package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "OMNISTUDY"

const (
	// DefaultRequestTimeoutSeconds leaves room for the default model lists to
	// be retried in full: 120 units of rate-limit backoff plus call time.
	DefaultRequestTimeoutSeconds = 300

	// DefaultMaxRetries is the number of attempts per model.
	DefaultMaxRetries = 3
)

var (
	// DefaultGroqModels is the primary provider's candidate list.
	DefaultGroqModels = []string{"llama-3.3-70b-versatile", "llama-3.1-8b-instant"}

	// DefaultGeminiModels is the secondary provider's candidate list.
	DefaultGeminiModels = []string{"gemini-1.5-flash", "gemini-1.5-flash-8b", "gemini-2.0-flash"}
)

// envAliases are the bare variable names the hosted deployments already
// use. The prefixed name wins when both are set.
var envAliases = map[string]string{
	"llm.groq.api_key":   "GROQ_API_KEY",
	"llm.groq.models":    "GROQ_MODELS",
	"llm.gemini.api_key": "GEMINI_API_KEY",
	"llm.gemini.models":  "GEMINI_MODELS",
	"identity.api_key":   "FIREBASE_WEB_API_KEY",
}

// Load configuration from environment variables and an optional config.yaml
// in the working directory. Environment variables take precedence over
// values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file path. An empty path falls
// back to an optional ./config.yaml; an explicit path must exist.
func LoadFile(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadLLM reads the same sources as LoadFile but validates only the provider
// settings, for tools that call the gateway without serving HTTP.
func LoadLLM(path string) (*LLMConfig, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg.LLM); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg.LLM, nil
}

func read(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, alias := range envAliases {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, alias); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", alias, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.LLM.Groq.Models = normalizeModels(cfg.LLM.Groq.Models, DefaultGroqModels)
	cfg.LLM.Gemini.Models = normalizeModels(cfg.LLM.Gemini.Models, DefaultGeminiModels)

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.request_timeout_seconds", DefaultRequestTimeoutSeconds)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)

	v.SetDefault("identity.api_key", "")
	v.SetDefault("identity.base_url", "https://identitytoolkit.googleapis.com/v1")
	v.SetDefault("identity.timeout_seconds", 15)

	v.SetDefault("llm.backoff_unit_ms", 1000)

	v.SetDefault("llm.groq.api_key", "")
	v.SetDefault("llm.groq.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.groq.models", DefaultGroqModels)
	v.SetDefault("llm.groq.max_retries", DefaultMaxRetries)
	v.SetDefault("llm.groq.temperature", 0.3)
	v.SetDefault("llm.groq.timeout_seconds", 60)

	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.models", DefaultGeminiModels)
	v.SetDefault("llm.gemini.max_retries", DefaultMaxRetries)
	v.SetDefault("llm.gemini.timeout_seconds", 60)
}

// normalizeModels trims names and drops blanks, falling back to defaults
// when nothing remains. Comma-separated single entries are split.
func normalizeModels(models, defaults []string) []string {
	var out []string
	for _, entry := range models {
		for _, m := range strings.Split(entry, ",") {
			if m = strings.TrimSpace(m); m != "" {
				out = append(out, m)
			}
		}
	}
	if len(out) == 0 {
		return append([]string(nil), defaults...)
	}
	return out
}
