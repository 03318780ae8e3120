// Package metrics exposes Prometheus metrics for the completion gateway and
// the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the service. It implements
// generation.Recorder.
type Metrics struct {
	// Gateway metrics
	ProviderAttemptsTotal *prometheus.CounterVec
	BackoffSeconds        *prometheus.HistogramVec
	CompletionsTotal      *prometheus.CounterVec

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ProviderAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omnistudy_provider_attempts_total",
				Help: "Provider calls by result",
			},
			[]string{"provider", "model", "result"},
		),
		BackoffSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "omnistudy_provider_backoff_seconds",
				Help:    "Waits before retrying a rate-limited model",
				Buckets: []float64{1, 5, 10, 20, 30, 60},
			},
			[]string{"provider"},
		),
		CompletionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omnistudy_completions_total",
				Help: "Completion requests by outcome and serving provider",
			},
			[]string{"outcome", "provider", "model"},
		),
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omnistudy_http_requests_total",
				Help: "HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "omnistudy_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"method", "route"},
		),
	}
}

// RecordAttempt counts one provider call.
func (m *Metrics) RecordAttempt(provider, model, result string) {
	m.ProviderAttemptsTotal.WithLabelValues(provider, model, result).Inc()
}

// RecordBackoff observes a retry wait.
func (m *Metrics) RecordBackoff(provider string, wait time.Duration) {
	m.BackoffSeconds.WithLabelValues(provider).Observe(wait.Seconds())
}

// RecordOutcome counts one completed gateway request.
func (m *Metrics) RecordOutcome(provider, model string, ok bool) {
	outcome := "failure"
	if ok {
		outcome = "success"
	}
	m.CompletionsTotal.WithLabelValues(outcome, provider, model).Inc()
}

// Middleware records request counts and latency labelled by the chi route
// pattern, so path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
