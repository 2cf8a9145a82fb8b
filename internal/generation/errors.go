package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when the remote call fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate flashcards")

	// ErrInvalidResponse is returned when the model reply cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrUnauthorized is returned when the provider rejects the configured credentials
	ErrUnauthorized = errors.New("language model rejected credentials")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
