package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-flashgen/internal/api/shared"
	"github.com/phrazzld/scry-flashgen/internal/domain"
	"github.com/phrazzld/scry-flashgen/internal/generation"
	"github.com/phrazzld/scry-flashgen/internal/platform/logger"
)

// FlashcardHandler handles the JSON generation endpoint.
type FlashcardHandler struct {
	generator    generation.Generator
	defaultCount int
	logger       *slog.Logger
}

// NewFlashcardHandler creates a new FlashcardHandler. A defaultCount below 1
// falls back to domain.DefaultCount.
func NewFlashcardHandler(generator generation.Generator, defaultCount int, logger *slog.Logger) *FlashcardHandler {
	if defaultCount < domain.MinCount {
		defaultCount = domain.DefaultCount
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FlashcardHandler{
		generator:    generator,
		defaultCount: defaultCount,
		logger:       logger.With("component", "flashcard_handler"),
	}
}

// GenerateFlashcards handles POST /api/flashcards requests
func (h *FlashcardHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GenerateFlashcardsRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.DebugContext(r.Context(), "invalid request body", "error", err)
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	count := req.Count
	if count == 0 {
		count = h.defaultCount
	}

	set, err := h.generator.GenerateFlashcards(r.Context(), domain.GenerationRequest{
		Topic:              req.Topic,
		Count:              count,
		CustomInstructions: req.CustomInstructions,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.InfoContext(r.Context(), "flashcards generated",
		"title", set.Title,
		"requested", count,
		"generated", set.Len())

	shared.RespondWithJSON(w, r, http.StatusOK, flashcardSetToResponse(set))
}
