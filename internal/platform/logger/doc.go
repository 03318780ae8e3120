// Package logger configures the process-wide JSON slog logger and carries a
// request-scoped logger, plus an optional request ID, through contexts.
//
// Test helpers capture output in a TestLogBuffer so tests can assert on
// individual structured entries.
package logger
