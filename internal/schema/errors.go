package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrNoJSON is returned when the model output contains no JSON object.
	ErrNoJSON = errors.New("no JSON object found in output")

	// ErrMalformedJSON is returned when the extracted payload is not valid JSON.
	ErrMalformedJSON = errors.New("malformed JSON in output")

	// ErrSchemaMismatch is returned when valid JSON does not match the schema.
	ErrSchemaMismatch = errors.New("output does not match schema")

	// ErrInvalidSchema is returned when a schema descriptor itself is unusable.
	ErrInvalidSchema = errors.New("invalid schema descriptor")
)

// MismatchError points at the first location where a payload departs from
// the schema.
type MismatchError struct {
	Path   string
	Reason string
}

func (e *MismatchError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", ErrSchemaMismatch, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrSchemaMismatch, e.Path, e.Reason)
}

// Unwrap lets errors.Is match ErrSchemaMismatch.
func (e *MismatchError) Unwrap() error {
	return ErrSchemaMismatch
}

func mismatch(path, reason string) error {
	return &MismatchError{Path: path, Reason: reason}
}
