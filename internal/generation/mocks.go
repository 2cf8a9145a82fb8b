package generation

import (
	"context"

	"github.com/phrazzld/scry-flashgen/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockCompleter is a testify mock of Completer.
type MockCompleter struct {
	mock.Mock
}

// Complete records the call and returns the configured reply.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockGenerator is a testify mock of Generator.
type MockGenerator struct {
	mock.Mock
}

// GenerateFlashcards records the call and returns the configured result.
func (m *MockGenerator) GenerateFlashcards(
	ctx context.Context,
	req domain.GenerationRequest,
) (*domain.FlashcardSet, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlashcardSet), args.Error(1)
}
