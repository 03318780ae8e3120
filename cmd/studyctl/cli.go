package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/omnistudy/internal/config"
	"github.com/phrazzld/omnistudy/internal/platform/llm"
	"github.com/phrazzld/omnistudy/internal/platform/logger"
	"github.com/phrazzld/omnistudy/internal/service"
)

// cli holds the global flags and builds the study service on demand.
type cli struct {
	configPath   string
	logLevel     string
	outputFormat string

	// newService is replaced in tests
	newService func(ctx context.Context, c *cli) (service.StudyService, error)
}

func newCLI() *cli {
	return &cli{newService: buildStudyService}
}

func (c *cli) service(ctx context.Context) (service.StudyService, error) {
	return c.newService(ctx, c)
}

// buildStudyService wires the gateway from configuration. Logs go to stderr
// so stdout carries only the result.
func buildStudyService(ctx context.Context, c *cli) (service.StudyService, error) {
	cfg, err := config.LoadLLM(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level, ok := logger.ParseLevel(c.logLevel)
	if !ok {
		return nil, fmt.Errorf("invalid log level %q", c.logLevel)
	}
	log := logger.New(os.Stderr, level)
	slog.SetDefault(log)

	gateway, err := llm.NewGateway(ctx, log, *cfg)
	if err != nil {
		return nil, fmt.Errorf("build gateway: %w", err)
	}

	return service.NewStudyService(gateway, log)
}
