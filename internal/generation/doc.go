// Package generation turns a topic into a validated flashcard set by asking
// a language model (LLM) for structured output. It owns the content
// generation flow: build the prompt, make exactly one call through a
// Completer, then parse the reply against a schema.
//
// Transport and authentication failures are returned to the caller. Replies
// that cannot be parsed are absorbed: the Service logs the raw text and
// returns an empty fallback set titled with the requested topic, unless it
// was built WithStrictParsing.
//
// Concrete Completer implementations (OpenAI, Gemini) live under
// internal/platform and depend on this package, never the other way round.
package generation
