package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/omnistudy/internal/redact"
)

// DefaultBackoffUnit is the duration of one backoff step.
const DefaultBackoffUnit = time.Second

// RetryPolicy is the per-tier retry behaviour.
type RetryPolicy struct {
	// BackoffStep scales the linear backoff: the wait before retry n+1 is
	// n * BackoffStep backoff units.
	BackoffStep int

	// SkipOnQuotaExhausted abandons a model as soon as a quota-exhaustion
	// failure is seen, before any rate-limit retry is considered.
	SkipOnQuotaExhausted bool

	// DiagnosticLimit is how many of the tier's most recent errors are kept
	// for the failure summary.
	DiagnosticLimit int
}

var (
	// PrimaryPolicy retries rate limits after 5, 10, ... units and keeps two diagnostics.
	PrimaryPolicy = RetryPolicy{BackoffStep: 5, DiagnosticLimit: 2}

	// SecondaryPolicy waits 10, 20, ... units, skips quota-exhausted models
	// immediately and keeps three diagnostics.
	SecondaryPolicy = RetryPolicy{BackoffStep: 10, SkipOnQuotaExhausted: true, DiagnosticLimit: 3}
)

// Tier is one provider in the gateway's fixed priority order. A nil
// Provider marks the tier as unconfigured; it is skipped without being
// recorded as a failure.
type Tier struct {
	Spec     ProviderSpec
	Provider Provider
	Policy   RetryPolicy
}

func (t Tier) name() string {
	if t.Spec.Name != "" {
		return t.Spec.Name
	}
	if t.Provider != nil {
		return t.Provider.Name()
	}
	return "unknown"
}

// Sleeper blocks for d, returning early with the context's error if ctx ends first.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the default Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Recorder observes gateway activity. The metrics package implements it.
type Recorder interface {
	// RecordAttempt is called after every provider call with "success" or the ErrorKind label.
	RecordAttempt(provider, model, result string)

	// RecordBackoff is called before each backoff wait.
	RecordBackoff(provider string, wait time.Duration)

	// RecordOutcome is called once per request; provider and model are empty on failure.
	RecordOutcome(provider, model string, ok bool)
}

type noopRecorder struct{}

func (noopRecorder) RecordAttempt(string, string, string) {}
func (noopRecorder) RecordBackoff(string, time.Duration)  {}
func (noopRecorder) RecordOutcome(string, string, bool)   {}

// Option configures a Gateway.
type Option func(*Gateway)

// WithSleeper replaces the blocking wait used between retries.
func WithSleeper(s Sleeper) Option {
	return func(g *Gateway) { g.sleep = s }
}

// WithBackoffUnit sets the duration of one backoff step.
func WithBackoffUnit(d time.Duration) Option {
	return func(g *Gateway) { g.unit = d }
}

// WithRecorder attaches a Recorder.
func WithRecorder(r Recorder) Option {
	return func(g *Gateway) { g.recorder = r }
}

// Gateway turns a Request into provider calls across an ordered list of
// tiers. The first successful call wins; the order never changes at
// runtime. It holds no per-request state and is safe for concurrent use.
type Gateway struct {
	tiers    []Tier
	unit     time.Duration
	sleep    Sleeper
	recorder Recorder
	logger   *slog.Logger
}

// NewGateway validates the configured tiers and builds a Gateway.
func NewGateway(logger *slog.Logger, tiers []Tier, opts ...Option) (*Gateway, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	g := &Gateway{
		tiers:    make([]Tier, len(tiers)),
		unit:     DefaultBackoffUnit,
		sleep:    SleepContext,
		recorder: noopRecorder{},
		logger:   logger,
	}
	copy(g.tiers, tiers)

	for _, opt := range opts {
		opt(g)
	}

	if g.unit < 0 {
		return nil, fmt.Errorf("%w: backoff unit cannot be negative", ErrInvalidConfig)
	}

	for i := range g.tiers {
		t := &g.tiers[i]
		if t.Provider == nil {
			continue
		}
		if t.Spec.Name == "" {
			t.Spec.Name = t.Provider.Name()
		}
		if err := t.Spec.Validate(); err != nil {
			return nil, err
		}
		if t.Policy.BackoffStep < 0 {
			return nil, fmt.Errorf("%w: provider %q backoff step cannot be negative", ErrInvalidConfig, t.Spec.Name)
		}
		if t.Policy.DiagnosticLimit < 1 {
			t.Policy.DiagnosticLimit = 1
		}
	}

	return g, nil
}

// Generate drives the configured providers until one returns text. It never
// returns an error: total failure is reported through Outcome.Failure.
func (g *Gateway) Generate(ctx context.Context, req Request) Outcome {
	if strings.TrimSpace(req.Prompt) == "" {
		return Outcome{Failure: &Failure{Cause: ErrEmptyPrompt}}
	}

	failure := &Failure{}
	calls := 0
	configured := 0

	for _, tier := range g.tiers {
		if tier.Provider == nil {
			continue
		}
		configured++

		success, diag, n, err := g.runTier(ctx, tier, req)
		calls += n
		if success != nil {
			g.recorder.RecordOutcome(success.Provider, success.Model, true)
			g.logger.InfoContext(ctx, "completion served",
				"provider", success.Provider,
				"model", success.Model,
				"attempts", calls)
			return Outcome{Success: success, Attempts: calls}
		}

		failure.Attempts = append(failure.Attempts, diag...)
		if err != nil {
			failure.Cause = err
			break
		}
	}

	if configured == 0 {
		failure.Cause = ErrNoProviders
	}

	g.recorder.RecordOutcome("", "", false)
	g.logger.WarnContext(ctx, "all providers failed",
		"attempts", calls,
		"providers", failure.Providers(),
		"cause", failure.Cause)

	return Outcome{Failure: failure, Attempts: calls}
}

// runTier walks one tier's models in order. It returns the success if any,
// the tier's retained diagnostics, the number of calls made, and a non-nil
// error only when the context ended the chain.
func (g *Gateway) runTier(ctx context.Context, tier Tier, req Request) (*Success, []AttemptError, int, error) {
	name := tier.Spec.Name
	diag := newDiagnostics(tier.Policy.DiagnosticLimit)
	calls := 0

	for _, model := range tier.Spec.Models {
		for attempt := 1; attempt <= tier.Spec.MaxRetries; attempt++ {
			calls++
			g.logger.DebugContext(ctx, "calling provider",
				"provider", name,
				"model", model,
				"attempt", attempt,
				"max_attempts", tier.Spec.MaxRetries)

			text, err := tier.Provider.Complete(ctx, model, req)
			if err == nil {
				g.recorder.RecordAttempt(name, model, "success")
				return &Success{Text: text, Provider: name, Model: model}, nil, calls, nil
			}

			perr := asProviderError(name, model, err)
			message := redact.String(perr.Message)
			diag.add(AttemptError{
				Provider: name,
				Model:    model,
				Attempt:  attempt,
				Kind:     perr.Kind(),
				Message:  message,
			})
			g.recorder.RecordAttempt(name, model, perr.Kind().String())

			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, diag.entries(), calls, ctxErr
			}

			if tier.Policy.SkipOnQuotaExhausted && perr.IsQuotaExhausted() {
				g.logger.WarnContext(ctx, "model quota exhausted, skipping to next model",
					"provider", name,
					"model", model,
					"attempt", attempt)
				break
			}

			if perr.IsRateLimited() && attempt < tier.Spec.MaxRetries {
				wait := time.Duration(attempt*tier.Policy.BackoffStep) * g.unit
				g.recorder.RecordBackoff(name, wait)
				g.logger.InfoContext(ctx, "rate limited, retrying after delay",
					"provider", name,
					"model", model,
					"attempt", attempt,
					"delay", wait.String())

				if err := g.sleep(ctx, wait); err != nil {
					return nil, diag.entries(), calls, err
				}
				continue
			}

			g.logger.WarnContext(ctx, "abandoning model",
				"provider", name,
				"model", model,
				"attempt", attempt,
				"error_kind", perr.Kind().String(),
				"error", message)
			break
		}
	}

	return nil, diag.entries(), calls, nil
}

// TierStatus describes one configured tier for display.
type TierStatus struct {
	Provider   string   `json:"provider"`
	Configured bool     `json:"configured"`
	Models     []string `json:"models"`
	MaxRetries int      `json:"max_retries"`
}

// Status is the gateway's static configuration, used to show which
// provider/model will be tried first before any request has been served.
type Status struct {
	Tiers           []TierStatus `json:"tiers"`
	DefaultProvider string       `json:"default_provider,omitempty"`
	DefaultModel    string       `json:"default_model,omitempty"`
}

// Describe reports the tiers in priority order.
func (g *Gateway) Describe() Status {
	var s Status
	for _, t := range g.tiers {
		configured := t.Provider != nil
		s.Tiers = append(s.Tiers, TierStatus{
			Provider:   t.name(),
			Configured: configured,
			Models:     append([]string(nil), t.Spec.Models...),
			MaxRetries: t.Spec.MaxRetries,
		})
		if configured && s.DefaultProvider == "" && len(t.Spec.Models) > 0 {
			s.DefaultProvider = t.name()
			s.DefaultModel = t.Spec.Models[0]
		}
	}
	return s
}

// MaxBackoff is the total wait of a chain in which every call to every
// configured model is rate limited. Provider call time is not included.
func (g *Gateway) MaxBackoff() time.Duration {
	var steps int
	for _, t := range g.tiers {
		if t.Provider == nil {
			continue
		}
		// waits of 1, 2, ... MaxRetries-1 steps between the attempts on one model
		perModel := t.Spec.MaxRetries * (t.Spec.MaxRetries - 1) / 2
		steps += len(t.Spec.Models) * perModel * t.Policy.BackoffStep
	}
	return time.Duration(steps) * g.unit
}

// diagnostics keeps the most recent errors up to a fixed limit.
type diagnostics struct {
	limit int
	items []AttemptError
}

func newDiagnostics(limit int) *diagnostics {
	return &diagnostics{limit: limit, items: make([]AttemptError, 0, limit)}
}

func (d *diagnostics) add(e AttemptError) {
	if len(d.items) == d.limit {
		copy(d.items, d.items[1:])
		d.items = d.items[:d.limit-1]
	}
	d.items = append(d.items, e)
}

func (d *diagnostics) entries() []AttemptError {
	return append([]AttemptError(nil), d.items...)
}
