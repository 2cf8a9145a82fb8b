package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	apiMiddleware "github.com/phrazzld/scry-flashgen/internal/api/middleware"
	"github.com/phrazzld/scry-flashgen/internal/generation"
	"github.com/rs/cors"
)

// RouterConfig holds the dependencies and settings of the HTTP router.
type RouterConfig struct {
	Generator          generation.Generator
	Logger             *slog.Logger
	DefaultCount       int
	MaxCount           int
	CORSAllowedOrigins []string
}

// NewRouter creates the application router with all routes and middleware:
//
//	GET  /               flashcard page
//	POST /               flashcard page form submission
//	POST /api/flashcards JSON generation endpoint
//	GET  /health         liveness check
func NewRouter(cfg RouterConfig) (*chi.Mux, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	pageHandler, err := NewPageHandler(cfg.Generator, cfg.DefaultCount, cfg.MaxCount, log)
	if err != nil {
		return nil, err
	}
	flashcardHandler := NewFlashcardHandler(cfg.Generator, cfg.DefaultCount, log)

	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(log))

	r.Get("/", pageHandler.Show)
	r.Post("/", pageHandler.Submit)

	origins := cfg.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Trace-ID"},
		ExposedHeaders: []string{"X-Trace-ID"},
		MaxAge:         300,
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(corsHandler.Handler)
		r.Post("/flashcards", flashcardHandler.GenerateFlashcards)
		// Preflight requests are answered by the CORS handler
		r.Options("/flashcards", func(w http.ResponseWriter, r *http.Request) {})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("Failed to write health check response", "error", err)
		}
	})

	return r, nil
}
