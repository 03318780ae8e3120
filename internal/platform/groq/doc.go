// Package groq provides the primary generation.Provider, backed by Groq's
// OpenAI-compatible chat completions API.
//
// This package is an infrastructure adapter in the hexagonal architecture.
// It translates a generation.Request into a single chat completion call and
// classifies the backend's failures into the generation.ProviderError
// taxonomy. It never retries: retry and fallback across models are the
// gateway's job.
//
// The adapter talks to Groq through the sashabaranov/go-openai client with
// an overridden base URL, so any OpenAI-compatible endpoint can stand in for
// Groq in tests.
package groq
