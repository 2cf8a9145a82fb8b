// Package domain defines the core value objects and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain value fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyTopic is returned when a generation request has no topic.
	ErrEmptyTopic = errors.New("topic cannot be empty")

	// ErrInvalidCount is returned when the requested card count is out of range.
	ErrInvalidCount = errors.New("invalid flashcard count")

	// ErrEmptyFront is returned when a flashcard has no front side.
	ErrEmptyFront = errors.New("flashcard front cannot be empty")

	// ErrEmptyBack is returned when a flashcard has no back side.
	ErrEmptyBack = errors.New("flashcard back cannot be empty")

	// ErrEmptyTitle is returned when a flashcard set has no title.
	ErrEmptyTitle = errors.New("flashcard set title cannot be empty")
)

// ValidationError describes a single invalid field. It wraps an underlying
// sentinel so callers can match on it with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for field. When err is nil the
// error wraps ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
