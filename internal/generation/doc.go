// Package generation is the boundary between the study features and the
// external AI/LLM providers that produce their content. It defines the
// provider port (Provider), the request and outcome types, the error
// taxonomy adapters classify into, and the Gateway that drives the
// configured providers in priority order with per-model retry and backoff.
//
// Concrete adapters live under internal/platform (groq, gemini); they are
// the only code that inspects provider-specific error payloads.
package generation
