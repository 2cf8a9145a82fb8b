// Package openai provides a generation.Completer backed by the OpenAI chat
// completions API (or any endpoint compatible with it, selected through the
// configured base URL).
//
// SDK retries are disabled: every Complete call makes exactly one request.
// Rejected credentials map to generation.ErrUnauthorized, content filter
// stops map to generation.ErrContentBlocked, and all other failures map to
// generation.ErrGenerationFailed.
package openai
