package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		req      GenerationRequest
		maxCount int
		wantErr  error
		field    string
	}{
		{
			name:     "valid request",
			req:      GenerationRequest{Topic: "Python Programming", Count: 5},
			maxCount: 20,
		},
		{
			name:     "upper bound inclusive",
			req:      GenerationRequest{Topic: "Rust", Count: 20},
			maxCount: 20,
		},
		{
			name:     "empty topic",
			req:      GenerationRequest{Topic: "", Count: 5},
			maxCount: 20,
			wantErr:  ErrEmptyTopic,
			field:    "topic",
		},
		{
			name:     "whitespace topic",
			req:      GenerationRequest{Topic: " \t ", Count: 5},
			maxCount: 20,
			wantErr:  ErrEmptyTopic,
			field:    "topic",
		},
		{
			name:     "zero count",
			req:      GenerationRequest{Topic: "Go", Count: 0},
			maxCount: 20,
			wantErr:  ErrInvalidCount,
			field:    "count",
		},
		{
			name:     "count above bound",
			req:      GenerationRequest{Topic: "Go", Count: 21},
			maxCount: 20,
			wantErr:  ErrInvalidCount,
			field:    "count",
		},
		{
			name:     "invalid bound falls back to default",
			req:      GenerationRequest{Topic: "Go", Count: 20},
			maxCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.req.Validate(tt.maxCount)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestGenerationRequestNormalize(t *testing.T) {
	t.Parallel()

	req := GenerationRequest{
		Topic:              "  Python Programming\n",
		Count:              3,
		CustomInstructions: "  Focus on advanced topics only  ",
	}.Normalize()

	assert.Equal(t, "Python Programming", req.Topic)
	assert.Equal(t, "  Focus on advanced topics only  ", req.CustomInstructions)
	assert.Equal(t, 3, req.Count)

	blank := GenerationRequest{Topic: "Go", CustomInstructions: " \n\t "}.Normalize()
	assert.Empty(t, blank.CustomInstructions)
}

func TestValidationErrorDefaultsToErrValidation(t *testing.T) {
	t.Parallel()

	err := NewValidationError("field", "is bad", nil)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "field is bad", err.Error())
}
