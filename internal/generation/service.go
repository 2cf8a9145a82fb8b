package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-flashgen/internal/domain"
	"github.com/phrazzld/scry-flashgen/internal/prompt"
	"github.com/phrazzld/scry-flashgen/internal/redact"
	"github.com/phrazzld/scry-flashgen/internal/schema"
)

// Service implements Generator on top of a Completer.
type Service struct {
	completer Completer
	builder   *prompt.Builder
	logger    *slog.Logger
	maxCount  int
	strict    bool

	flashcardSchema       *schema.Schema
	flashcardInstructions string
}

var _ Generator = (*Service)(nil)

// Option configures a Service.
type Option func(*Service)

// WithPromptBuilder replaces the default prompt builder.
func WithPromptBuilder(b *prompt.Builder) Option {
	return func(s *Service) {
		if b != nil {
			s.builder = b
		}
	}
}

// WithMaxCount sets the upper bound for GenerationRequest.Count.
func WithMaxCount(n int) Option {
	return func(s *Service) {
		if n >= domain.MinCount {
			s.maxCount = n
		}
	}
}

// WithStrictParsing makes unparseable replies surface as ErrInvalidResponse
// instead of the empty fallback set.
func WithStrictParsing() Option {
	return func(s *Service) {
		s.strict = true
	}
}

// NewService creates a Service that sends prompts through completer.
//
// Parameters:
//   - completer: The transport used for the single remote call per request
//   - logger: A structured logger for operation logging
//   - opts: Optional overrides (prompt builder, count bound, strict parsing)
//
// Returns:
//   - A ready Service or an error if a dependency is missing
func NewService(completer Completer, logger *slog.Logger, opts ...Option) (*Service, error) {
	if completer == nil {
		return nil, fmt.Errorf("%w: completer cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	s := &Service{
		completer:       completer,
		builder:         prompt.NewBuilder(),
		logger:          logger,
		maxCount:        domain.MaxCount,
		flashcardSchema: FlashcardSetSchema(),
	}
	for _, opt := range opts {
		opt(s)
	}

	instructions, err := s.flashcardSchema.FormatInstructions()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to render format instructions: %v", ErrInvalidConfig, err)
	}
	s.flashcardInstructions = instructions

	return s, nil
}

// MaxCount returns the largest card count the service accepts.
func (s *Service) MaxCount() int {
	return s.maxCount
}

// flashcardPayload is the decoded shape of a flashcard reply.
type flashcardPayload struct {
	Title      string             `json:"title"`
	Flashcards []domain.Flashcard `json:"flashcards"`
}

// GenerateFlashcards creates flashcards for the requested topic.
//
// Parameters:
//   - ctx: Context for the operation, passed through to the remote call
//   - req: Topic, count and optional custom instructions
//
// Returns:
//   - The parsed set; when the reply does not match the schema, the empty
//     fallback set titled with the topic (or ErrInvalidResponse in strict mode)
//   - A validation error for bad input, or a wrapped transport error
func (s *Service) GenerateFlashcards(
	ctx context.Context,
	req domain.GenerationRequest,
) (*domain.FlashcardSet, error) {
	req = req.Normalize()
	if err := req.Validate(s.maxCount); err != nil {
		return nil, err
	}

	log := s.logger.With(
		"request_id", uuid.NewString(),
		"topic", req.Topic,
		"count", req.Count)

	raw, err := s.complete(ctx, log, req, s.flashcardInstructions)
	if err != nil {
		return nil, err
	}

	set, err := s.parseFlashcards(ctx, log, raw, req.Count)
	if err != nil {
		log.ErrorContext(ctx, "Failed to parse model output",
			"error", err,
			"raw_output", raw)

		if s.strict {
			return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
		}
		return domain.NewFallbackSet(req.Topic), nil
	}

	log.InfoContext(ctx, "Flashcards generated",
		"title", set.Title,
		"card_count", set.Len())

	return set, nil
}

// parseFlashcards decodes raw into a set holding at most count cards.
func (s *Service) parseFlashcards(
	ctx context.Context,
	log *slog.Logger,
	raw string,
	count int,
) (*domain.FlashcardSet, error) {
	var payload flashcardPayload
	if err := s.flashcardSchema.Decode(raw, &payload); err != nil {
		return nil, err
	}

	cards := payload.Flashcards
	if len(cards) > count {
		log.WarnContext(ctx, "Model returned more flashcards than requested, truncating",
			"returned", len(cards),
			"requested", count)
		cards = cards[:count]
	}

	return domain.NewFlashcardSet(payload.Title, cards)
}

// GenerateStructured runs the same flow against an arbitrary schema and
// returns the decoded object. Parse failures yield sch.Fallback(topic), or
// ErrInvalidResponse in strict mode.
func (s *Service) GenerateStructured(
	ctx context.Context,
	req domain.GenerationRequest,
	sch *schema.Schema,
) (map[string]any, error) {
	if err := sch.Check(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	req = req.Normalize()
	if err := req.Validate(s.maxCount); err != nil {
		return nil, err
	}

	instructions, err := sch.FormatInstructions()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to render format instructions: %v", ErrInvalidConfig, err)
	}

	log := s.logger.With(
		"request_id", uuid.NewString(),
		"topic", req.Topic,
		"schema", sch.Name)

	raw, err := s.complete(ctx, log, req, instructions)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any)
	if err := sch.Decode(raw, &out); err != nil {
		log.ErrorContext(ctx, "Failed to parse model output",
			"error", err,
			"raw_output", raw)

		if s.strict {
			return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
		}
		return sch.Fallback(req.Topic), nil
	}

	log.InfoContext(ctx, "Structured output generated", "keys", len(out))
	return out, nil
}

// complete builds the prompt and makes the single remote call.
func (s *Service) complete(
	ctx context.Context,
	log *slog.Logger,
	req domain.GenerationRequest,
	formatInstructions string,
) (string, error) {
	p, err := s.builder.Build(prompt.Input{
		Topic:              req.Topic,
		Count:              req.Count,
		CustomInstructions: req.CustomInstructions,
		FormatInstructions: formatInstructions,
		Vars:               req.Vars,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	log.DebugContext(ctx, "Prompt built",
		"template_name", s.builder.TemplateName(),
		"prompt_length", len(p))

	start := time.Now()
	raw, err := s.completer.Complete(ctx, p)
	elapsed := time.Since(start)
	if err != nil {
		log.ErrorContext(ctx, "Language model call failed",
			"error", redact.Error(err),
			"duration_ms", elapsed.Milliseconds())

		if errors.Is(err, ErrGenerationFailed) ||
			errors.Is(err, ErrUnauthorized) ||
			errors.Is(err, ErrContentBlocked) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	log.DebugContext(ctx, "Language model call succeeded",
		"duration_ms", elapsed.Milliseconds(),
		"response_length", len(raw))

	return raw, nil
}
