package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/scry-flashgen/internal/config"
	"github.com/phrazzld/scry-flashgen/internal/generation"
	"google.golang.org/genai"
)

// responseMIMEType asks Gemini to reply with raw JSON.
const responseMIMEType = "application/json"

// Completer implements generation.Completer using the Gemini API.
type Completer struct {
	// logger is used for structured logging
	logger *slog.Logger

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string

	// genConfig is sent with every GenerateContent call
	genConfig *genai.GenerateContentConfig
}

var _ generation.Completer = (*Completer)(nil)

// NewCompleter creates a new Gemini completer with the provided dependencies.
//
// Parameters:
//   - ctx: Context for client initialization
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name and sampling settings
//
// Returns:
//   - A properly initialized Completer or an error if initialization fails
func NewCompleter(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Completer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if len(cfg.Headers) > 0 {
		headers := make(http.Header, len(cfg.Headers))
		for name, value := range cfg.Headers {
			headers.Set(name, value)
		}
		clientConfig.HTTPOptions.Headers = headers
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(cfg.Temperature)),
		ResponseMIMEType: responseMIMEType,
	}
	if cfg.MaxTokens > 0 {
		genConfig.MaxOutputTokens = int32(cfg.MaxTokens)
	}

	return &Completer{
		logger:    logger.With("component", "gemini_completer"),
		client:    client,
		model:     cfg.Model,
		genConfig: genConfig,
	}, nil
}

// Model returns the configured model name.
func (c *Completer) Model() string {
	return c.model
}

// Complete sends prompt to Gemini once and returns the reply text.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - prompt: The fully assembled prompt
//
// Returns:
//   - The raw reply text, possibly empty
//   - An error wrapping one of the generation sentinel errors
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	c.logger.DebugContext(ctx, "Making Gemini API call",
		"model", c.model,
		"prompt_length", len(prompt))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.genConfig)
	if err != nil {
		return "", mapError(err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked (%s)",
				generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: no candidates in response", generation.ErrGenerationFailed)
	}

	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}

	text := resp.Text()
	c.logger.DebugContext(ctx, "Gemini API call successful",
		"finish_reason", resp.Candidates[0].FinishReason,
		"response_length", len(text))

	return text, nil
}

// mapError translates a genai client error into a generation sentinel error.
func mapError(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		var apiErrPtr *genai.APIError
		if !errors.As(err, &apiErrPtr) || apiErrPtr == nil {
			return fmt.Errorf("%w: %w", generation.ErrGenerationFailed, err)
		}
		apiErr = *apiErrPtr
	}

	switch {
	case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
		return fmt.Errorf("%w: %w", generation.ErrUnauthorized, err)
	case apiErr.Code == http.StatusBadRequest && strings.Contains(apiErr.Message, "API key"):
		// Gemini reports a bad key as INVALID_ARGUMENT.
		return fmt.Errorf("%w: %w", generation.ErrUnauthorized, err)
	default:
		return fmt.Errorf("%w: %w", generation.ErrGenerationFailed, err)
	}
}
