// Package llm selects the generation.Completer implementation for the
// configured provider.
package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-flashgen/internal/config"
	"github.com/phrazzld/scry-flashgen/internal/generation"
	"github.com/phrazzld/scry-flashgen/internal/platform/gemini"
	"github.com/phrazzld/scry-flashgen/internal/platform/openai"
)

// Supported provider names for llm.provider.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// NewCompleter creates the Completer for cfg.Provider. An empty provider
// selects OpenAI.
//
// Parameters:
//   - ctx: Context for client initialization
//   - logger: A logger for recording operations
//   - cfg: LLM configuration including the provider name and API key
//
// Returns:
//   - A generation.Completer implementation
//   - An error wrapping generation.ErrInvalidConfig for unknown providers or
//     invalid settings
func NewCompleter(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (generation.Completer, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	provider := cfg.Provider
	if provider == "" {
		provider = ProviderOpenAI
	}

	logger.InfoContext(ctx, "Initializing language model completer",
		"provider", provider,
		"model", cfg.Model)

	switch provider {
	case ProviderOpenAI:
		return openai.NewCompleter(logger, cfg)
	case ProviderGemini:
		return gemini.NewCompleter(ctx, logger, cfg)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, provider)
	}
}
