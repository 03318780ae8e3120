package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/omnistudy/internal/config"
	"github.com/phrazzld/omnistudy/internal/generation"
	"github.com/phrazzld/omnistudy/internal/platform/firebase"
	"github.com/phrazzld/omnistudy/internal/platform/llm"
	"github.com/phrazzld/omnistudy/internal/platform/metrics"
	"github.com/phrazzld/omnistudy/internal/platform/pdftext"
	"github.com/phrazzld/omnistudy/internal/service"
	"github.com/phrazzld/omnistudy/internal/service/auth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// requestTimeoutHeadroom is the provider call time allowed on top of the
// gateway's worst-case backoff.
const requestTimeoutHeadroom = 60 * time.Second

// pdfPoolSize is the number of uploads whose text can be extracted at once.
const pdfPoolSize = 2

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	// requestTimeout bounds protected requests; never below the gateway's worst-case backoff
	requestTimeout time.Duration

	// Observability
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	// Service interfaces
	gateway      *generation.Gateway
	jwtService   auth.JWTService
	identity     *firebase.Client
	pdfText      *pdftext.Extractor
	studyService service.StudyService
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}

	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.New(app.registry)

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.identity, err = firebase.NewClient(logger.With("component", "identity_client"), cfg.Identity)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize identity client: %w", err)
	}
	if !app.identity.Configured() {
		logger.Warn("identity service API key not set; registration and login will answer 503")
	}

	app.gateway, err = llm.NewGateway(ctx, logger, cfg.LLM, generation.WithRecorder(app.metrics))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize completion gateway: %w", err)
	}
	status := app.gateway.Describe()
	logger.Info("Completion gateway initialized",
		"default_provider", status.DefaultProvider,
		"default_model", status.DefaultModel)

	app.requestTimeout = minimumRequestTimeout(cfg.Server.RequestTimeout(), app.gateway.MaxBackoff())
	if app.requestTimeout != cfg.Server.RequestTimeout() {
		logger.Warn("request timeout is shorter than the provider retry chain, raising it",
			"configured", cfg.Server.RequestTimeout().String(),
			"effective", app.requestTimeout.String())
	}

	app.pdfText = pdftext.NewExtractor(logger.With("component", "pdf_text"), pdfPoolSize)

	app.studyService, err = service.NewStudyService(app.gateway, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create study service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// minimumRequestTimeout raises configured so that a request can wait out
// every rate-limit backoff and still have headroom for the provider calls.
func minimumRequestTimeout(configured, maxBackoff time.Duration) time.Duration {
	if floor := maxBackoff + requestTimeoutHeadroom; configured < floor {
		return floor
	}
	return configured
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()
	defer func() {
		if err := app.pdfText.Close(); err != nil {
			app.logger.Error("failed to stop pdf runtime", "error", err)
		}
	}()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
