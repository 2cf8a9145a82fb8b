package domain

import (
	"strconv"
	"strings"
)

// Default bounds for the number of cards a single request may ask for.
const (
	DefaultCount = 5
	MinCount     = 1
	MaxCount     = 20
)

// GenerationRequest carries the user's input for one generation call. It
// lives only for the duration of that call.
type GenerationRequest struct {
	// Topic is the subject the flashcards should cover.
	Topic string `json:"topic"`

	// Count is the number of flashcards to ask for.
	Count int `json:"count"`

	// CustomInstructions are appended verbatim to the prompt when set.
	CustomInstructions string `json:"custom_instructions,omitempty"`

	// Vars holds extra values exposed to custom prompt templates.
	Vars map[string]string `json:"vars,omitempty"`
}

// Normalize trims surrounding whitespace from the topic. Custom
// instructions are kept byte for byte; instructions that are only
// whitespace are dropped.
func (r GenerationRequest) Normalize() GenerationRequest {
	r.Topic = strings.TrimSpace(r.Topic)
	if strings.TrimSpace(r.CustomInstructions) == "" {
		r.CustomInstructions = ""
	}
	return r
}

// Validate checks the request against the given upper bound for Count.
// A maxCount below MinCount falls back to MaxCount.
func (r GenerationRequest) Validate(maxCount int) error {
	if maxCount < MinCount {
		maxCount = MaxCount
	}

	if strings.TrimSpace(r.Topic) == "" {
		return NewValidationError("topic", "is required", ErrEmptyTopic)
	}

	if r.Count < MinCount || r.Count > maxCount {
		return NewValidationError(
			"count",
			"must be between "+strconv.Itoa(MinCount)+" and "+strconv.Itoa(maxCount),
			ErrInvalidCount,
		)
	}

	return nil
}
