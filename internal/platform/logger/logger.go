package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/omnistudy/internal/config"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
)

// ParseLevel maps a configured level name to a slog level. The second
// return value is false when the name is not recognised and info is used.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Setup initializes the application's logger from the server configuration.
// It writes JSON to stdout, installs the logger as the slog default and
// returns it.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	return setup(cfg.LogLevel, os.Stdout, os.Stderr), nil
}

func setup(levelName string, out, warnOut io.Writer) *slog.Logger {
	level, ok := ParseLevel(levelName)
	if !ok {
		slog.New(slog.NewTextHandler(warnOut, nil)).Warn("invalid log level configured, using default level",
			"configured_level", levelName,
			"default_level", "info")
	}

	logger := New(out, level)
	slog.SetDefault(logger)
	return logger
}

// New creates a JSON logger writing to out at level.
func New(out io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithRequestID returns a context carrying a request ID. Loggers obtained
// through FromContext include it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the request ID stored in ctx, if any.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOrDefault(ctx, slog.Default())
}

// FromContextOrDefault returns the logger stored in ctx, falling back to
// defaultLogger. A request ID in ctx is attached to the returned logger.
func FromContextOrDefault(ctx context.Context, defaultLogger *slog.Logger) *slog.Logger {
	if defaultLogger == nil {
		defaultLogger = slog.Default()
	}
	if ctx == nil {
		return defaultLogger
	}

	log, ok := ctx.Value(loggerKey).(*slog.Logger)
	if !ok || log == nil {
		log = defaultLogger
	}
	if id := RequestID(ctx); id != "" {
		log = log.With("request_id", id)
	}
	return log
}
