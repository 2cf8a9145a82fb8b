package generation

import (
	"context"

	"github.com/phrazzld/scry-flashgen/internal/domain"
)

// Completer sends one prompt to a remote text-generation service and returns
// the raw text of its reply. Implementations make a single attempt and do
// not retry.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator defines the interface for generating flashcards from a topic.
// This interface serves as a boundary between the delivery layer (web page,
// JSON API, CLI) and the LLM-backed implementation.
type Generator interface {
	// GenerateFlashcards produces a flashcard set for the request.
	//
	// Returns:
	//   - The generated set, or the empty fallback set when the model reply
	//     could not be parsed
	//   - An error for invalid requests and for transport failures
	GenerateFlashcards(ctx context.Context, req domain.GenerationRequest) (*domain.FlashcardSet, error)
}
