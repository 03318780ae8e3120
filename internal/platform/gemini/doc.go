// Package gemini provides the secondary generation.Provider, backed by
// Google's Gemini API through the google.golang.org/genai client.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the gateway to Google's external Gemini service without
// exposing the details of the external service to the core application.
//
// Key components:
//
// 1. Provider:
//   - Implements the generation.Provider interface
//   - Sends one GenerateContent call per Complete, never retrying
//   - Attaches inline image data when the request carries an image
//   - Requests a JSON response MIME type for JSON-array requests
//
// 2. Error Handling:
//   - Classifies RESOURCE_EXHAUSTED and zero-limit quota errors as quota exhaustion
//   - Classifies HTTP 429 responses as rate limits
//   - Reports safety blocks as generation.ErrContentBlocked
package gemini
