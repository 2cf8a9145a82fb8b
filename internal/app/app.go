// Package app wires configuration, logging, the language model transport
// and the HTTP router into a runnable application shared by the CLI and the
// Lambda entrypoint.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/scry-flashgen/internal/api"
	"github.com/phrazzld/scry-flashgen/internal/config"
	"github.com/phrazzld/scry-flashgen/internal/generation"
	"github.com/phrazzld/scry-flashgen/internal/platform/llm"
	"github.com/phrazzld/scry-flashgen/internal/prompt"
)

// Application holds all the shared application dependencies.
type Application struct {
	// Configuration
	Config *config.Config

	// Core services
	Logger    *slog.Logger
	Generator *generation.Service
}

// New creates an Application whose completer is selected from cfg.LLM.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	completer, err := llm.NewCompleter(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize language model: %w", err)
	}

	return NewWithCompleter(cfg, logger, completer)
}

// NewWithCompleter creates an Application around an existing completer.
func NewWithCompleter(cfg *config.Config, logger *slog.Logger, completer generation.Completer) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	opts := []generation.Option{generation.WithMaxCount(cfg.Generation.MaxCount)}
	if cfg.Generation.StrictParsing {
		opts = append(opts, generation.WithStrictParsing())
	}
	if path := cfg.Generation.PromptTemplatePath; path != "" {
		builder, err := prompt.NewBuilderFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load prompt template: %w", err)
		}
		opts = append(opts, generation.WithPromptBuilder(builder))
		logger.Info("using custom prompt template", "path", path)
	}

	generator, err := generation.NewService(completer, logger.With("component", "generation"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generation service: %w", err)
	}

	logger.Info("generation service initialized",
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.Model,
		"max_count", generator.MaxCount(),
		"strict_parsing", cfg.Generation.StrictParsing)

	return &Application{
		Config:    cfg,
		Logger:    logger,
		Generator: generator,
	}, nil
}

// Router creates the HTTP router for the application.
func (a *Application) Router() (*chi.Mux, error) {
	return api.NewRouter(api.RouterConfig{
		Generator:          a.Generator,
		Logger:             a.Logger,
		DefaultCount:       a.Config.Generation.DefaultCount,
		MaxCount:           a.Generator.MaxCount(),
		CORSAllowedOrigins: a.Config.Server.CORSAllowedOrigins,
	})
}
