// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It serves the single flashcard page and the JSON
// generation endpoint, translating HTTP concerns to calls on a
// generation.Generator.
package api
