package generation

import (
	"errors"
	"strings"
)

// unavailableMessage heads every consolidated failure summary.
const unavailableMessage = "All configured AI providers are currently unavailable. " +
	"Check provider API keys, quotas, and model access."

// noProviderMessage is shown when no tier has credentials.
const noProviderMessage = "No AI provider configured. Add GROQ_API_KEY (recommended) or GEMINI_API_KEY."

// Success is the result of the first provider/model call that returned text.
type Success struct {
	Text     string
	Provider string
	Model    string
}

// AttemptError is one retained diagnostic from a failed provider call.
type AttemptError struct {
	Provider string
	Model    string
	Attempt  int
	Kind     ErrorKind
	Message  string
}

// Failure is returned when no provider/model combination succeeded. It
// holds a bounded diagnostic summary, not a full history.
type Failure struct {
	// Attempts are the retained diagnostics in call order
	Attempts []AttemptError

	// Cause is set when the chain ended for a reason other than provider
	// errors (no providers configured, empty prompt, cancelled context)
	Cause error
}

// Error implements the error interface so callers can propagate a Failure.
func (f *Failure) Error() string {
	return f.Summary()
}

// Unwrap returns the cause, if any.
func (f *Failure) Unwrap() error {
	return f.Cause
}

// Providers returns the distinct providers named in the diagnostics, in order.
func (f *Failure) Providers() []string {
	var names []string
	seen := make(map[string]bool)
	for _, a := range f.Attempts {
		if !seen[a.Provider] {
			seen[a.Provider] = true
			names = append(names, a.Provider)
		}
	}
	return names
}

// Summary renders the user-facing diagnostic: one line per provider
// listing its retained errors.
func (f *Failure) Summary() string {
	if errors.Is(f.Cause, ErrNoProviders) {
		return noProviderMessage
	}
	if len(f.Attempts) == 0 && f.Cause != nil {
		return "AI request failed: " + f.Cause.Error()
	}

	var b strings.Builder
	b.WriteString(unavailableMessage)
	b.WriteString("\n")

	for _, provider := range f.Providers() {
		var parts []string
		for _, a := range f.Attempts {
			if a.Provider == provider {
				parts = append(parts, a.Model+": "+a.Message)
			}
		}
		b.WriteString("\n")
		b.WriteString(provider)
		b.WriteString(" -> ")
		b.WriteString(strings.Join(parts, " | "))
	}

	if f.Cause != nil {
		b.WriteString("\nrequest ended early: ")
		b.WriteString(f.Cause.Error())
	}
	return b.String()
}

// Outcome is the single result of Gateway.Generate: exactly one of
// Success or Failure is set.
type Outcome struct {
	Success *Success
	Failure *Failure

	// Attempts is the number of provider calls made for the request
	Attempts int
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool {
	return o.Success != nil
}

// Err returns the failure as an error, or nil on success.
func (o Outcome) Err() error {
	if o.Failure == nil {
		return nil
	}
	return o.Failure
}
