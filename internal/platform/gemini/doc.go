// Package gemini provides a generation.Completer backed by Google's Gemini API.
//
// This package is an infrastructure adapter: it turns one prompt into one
// GenerateContent call through the google.golang.org/genai client and hands
// the raw reply text back to the generation service, which owns parsing and
// fallback behavior.
//
// Error translation:
//   - HTTP 401/403 (and invalid API key reports) map to generation.ErrUnauthorized
//   - responses stopped by safety filters map to generation.ErrContentBlocked
//   - everything else maps to generation.ErrGenerationFailed
//
// The completer makes exactly one attempt per call. It requests a JSON
// response MIME type so that the model is steered toward a single JSON
// object.
package gemini
