// Package main implements the entry point for the OmniStudy API server,
// which serves the study features over HTTP and routes every completion
// through the multi-provider gateway.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/phrazzld/omnistudy/internal/config"
	"github.com/phrazzld/omnistudy/internal/platform/logger"
)

func main() {
	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to create application", "error", err)
		log.Fatalf("Failed to create application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("application stopped with error", "error", err)
		log.Fatalf("Application error: %v", err)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"appLoggerlevel", cfg.Server.LogLevel,
		"request_timeout_seconds", cfg.Server.RequestTimeoutSeconds)
	l.Debug("Provider configuration",
		"groq_configured", cfg.LLM.Groq.Configured(),
		"groq_models", cfg.LLM.Groq.Models,
		"gemini_configured", cfg.LLM.Gemini.Configured(),
		"gemini_models", cfg.LLM.Gemini.Models,
		"identity_configured", cfg.Identity.APIKey != "")

	return cfg, l, nil
}
