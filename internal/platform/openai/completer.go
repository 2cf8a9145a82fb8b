package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/phrazzld/scry-flashgen/internal/config"
	"github.com/phrazzld/scry-flashgen/internal/generation"
)

// finishReasonContentFilter is reported when OpenAI's moderation stops a reply.
const finishReasonContentFilter = "content_filter"

// Completer implements generation.Completer using chat completions.
type Completer struct {
	logger      *slog.Logger
	client      openai.Client
	model       string
	maxTokens   int
	temperature float64
}

var _ generation.Completer = (*Completer)(nil)

// NewCompleter creates a new OpenAI completer.
//
// Parameters:
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name, optional base URL,
//     extra headers and sampling settings
//
// Returns:
//   - A properly initialized Completer or an error if the configuration is invalid
func NewCompleter(logger *slog.Logger, cfg config.LLMConfig) (*Completer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(normalizeBaseURL(cfg.BaseURL)))
	}
	for name, value := range cfg.Headers {
		opts = append(opts, option.WithHeader(name, value))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	return &Completer{
		logger:      logger.With("component", "openai_completer"),
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

// normalizeBaseURL makes sure relative API paths resolve under the base path.
func normalizeBaseURL(base string) string {
	if strings.HasSuffix(base, "/") {
		return base
	}
	return base + "/"
}

// Model returns the configured model name.
func (c *Completer) Model() string {
	return c.model
}

// Complete sends prompt as a single user message and returns the content of
// the first choice.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.temperature),
	}
	if c.maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(c.maxTokens))
	}

	c.logger.DebugContext(ctx, "Making OpenAI API call",
		"model", c.model,
		"prompt_length", len(prompt))

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", mapError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", generation.ErrGenerationFailed)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == finishReasonContentFilter {
		return "", fmt.Errorf("%w: reply stopped by content filter", generation.ErrContentBlocked)
	}

	c.logger.DebugContext(ctx, "OpenAI API call successful",
		"finish_reason", choice.FinishReason,
		"response_length", len(choice.Message.Content))

	return choice.Message.Content, nil
}

// mapError translates an SDK error into a generation sentinel error.
func mapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %w", generation.ErrUnauthorized, err)
		}
	}
	return fmt.Errorf("%w: %w", generation.ErrGenerationFailed, err)
}
