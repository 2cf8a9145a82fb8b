package api

import "github.com/phrazzld/scry-flashgen/internal/domain"

// GenerateFlashcardsRequest defines the payload for POST /api/flashcards.
type GenerateFlashcardsRequest struct {
	Topic string `json:"topic" validate:"required"`

	// Count defaults to the configured default when omitted. The upper bound
	// is enforced by the generator.
	Count int `json:"count" validate:"omitempty,min=1"`

	CustomInstructions string `json:"custom_instructions" validate:"max=4000"`
}

// FlashcardResponse is one card in a FlashcardSetResponse.
type FlashcardResponse struct {
	Front       string `json:"front"`
	Back        string `json:"back"`
	Explanation string `json:"explanation,omitempty"`
}

// FlashcardSetResponse defines the successful response for POST /api/flashcards.
type FlashcardSetResponse struct {
	Title      string              `json:"title"`
	Flashcards []FlashcardResponse `json:"flashcards"`
}

// flashcardSetToResponse converts a domain.FlashcardSet to its response DTO.
// The card list is never nil so that it encodes as [].
func flashcardSetToResponse(set *domain.FlashcardSet) FlashcardSetResponse {
	resp := FlashcardSetResponse{
		Title:      set.Title,
		Flashcards: make([]FlashcardResponse, 0, set.Len()),
	}
	for _, card := range set.Flashcards {
		resp.Flashcards = append(resp.Flashcards, FlashcardResponse{
			Front:       card.Front,
			Back:        card.Back,
			Explanation: card.Explanation,
		})
	}
	return resp
}
