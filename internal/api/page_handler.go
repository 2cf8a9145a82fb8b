package api

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/phrazzld/scry-flashgen/internal/domain"
	"github.com/phrazzld/scry-flashgen/internal/generation"
	"github.com/phrazzld/scry-flashgen/internal/platform/logger"
	"github.com/phrazzld/scry-flashgen/internal/render"
)

//go:embed templates/index.html
var templateFS embed.FS

// Messages shown on the page.
const (
	msgEmptyTopic = "Please enter a topic for the flashcards."
	msgFailure    = "Failed to generate flashcards: "
)

// PageHandler serves the single interactive page.
type PageHandler struct {
	generator    generation.Generator
	markdown     *render.Markdown
	tmpl         *template.Template
	defaultCount int
	maxCount     int
	logger       *slog.Logger
}

// cardView is one rendered card.
type cardView struct {
	Number      int
	Front       string
	Back        template.HTML
	Explanation template.HTML
}

// pageData is the template model for index.html.
type pageData struct {
	Topic        string
	Count        int
	MaxCount     int
	Instructions string
	Warning      string
	Failure      string
	HasResult    bool
	Summary      string
	Cards        []cardView
}

// NewPageHandler creates a PageHandler. Counts below 1 fall back to the
// domain defaults.
func NewPageHandler(
	generator generation.Generator,
	defaultCount, maxCount int,
	logger *slog.Logger,
) (*PageHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	if maxCount < domain.MinCount {
		maxCount = domain.MaxCount
	}
	if defaultCount < domain.MinCount || defaultCount > maxCount {
		defaultCount = min(domain.DefaultCount, maxCount)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PageHandler{
		generator:    generator,
		markdown:     render.NewMarkdown(),
		tmpl:         tmpl,
		defaultCount: defaultCount,
		maxCount:     maxCount,
		logger:       logger.With("component", "page_handler"),
	}, nil
}

// Show handles GET / requests
func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageData{Count: h.defaultCount, MaxCount: h.maxCount})
}

// Submit handles POST / requests. Generation failures are shown on the page
// together with an empty result; they never produce an error status.
func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	data := pageData{Count: h.defaultCount, MaxCount: h.maxCount}
	if err := r.ParseForm(); err != nil {
		data.Warning = "The form could not be read. Please try again."
		h.render(w, r, data)
		return
	}

	data.Topic = strings.TrimSpace(r.PostFormValue("topic"))
	data.Instructions = r.PostFormValue("instructions")
	if raw := strings.TrimSpace(r.PostFormValue("count")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			data.Warning = "Please choose a number of flashcards."
			h.render(w, r, data)
			return
		}
		data.Count = n
	}

	if data.Topic == "" {
		data.Warning = msgEmptyTopic
		h.render(w, r, data)
		return
	}

	set, err := h.generator.GenerateFlashcards(r.Context(), domain.GenerationRequest{
		Topic:              data.Topic,
		Count:              data.Count,
		CustomInstructions: data.Instructions,
	})
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			data.Warning = GetSafeErrorMessage(err)
			h.render(w, r, data)
			return
		}

		log.ErrorContext(r.Context(), "flashcard generation failed",
			"status_equivalent", MapErrorToStatusCode(err),
			"error_type", errorType(err))
		data.Failure = msgFailure + GetSafeErrorMessage(err)
		set = domain.NewFallbackSet(data.Topic)
	}

	data.HasResult = true
	data.Summary = render.Summary(set)
	data.Cards = make([]cardView, 0, set.Len())
	for i, card := range set.Flashcards {
		view := cardView{
			Number: i + 1,
			Front:  card.Front,
			Back:   h.markdown.HTML(card.Back),
		}
		if card.HasExplanation() {
			view.Explanation = h.markdown.HTML(card.Explanation)
		}
		data.Cards = append(data.Cards, view)
	}

	h.render(w, r, data)
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, data); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).
			ErrorContext(r.Context(), "failed to render page", "error", err)
	}
}

// errorType names the generation sentinel behind err for logs.
func errorType(err error) string {
	switch {
	case errors.Is(err, generation.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, generation.ErrContentBlocked):
		return "content_blocked"
	case errors.Is(err, generation.ErrInvalidResponse):
		return "invalid_response"
	case errors.Is(err, generation.ErrGenerationFailed):
		return "generation_failed"
	default:
		return "unknown"
	}
}
