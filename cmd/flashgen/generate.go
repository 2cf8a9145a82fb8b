package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/scry-flashgen/internal/app"
	"github.com/phrazzld/scry-flashgen/internal/domain"
	"github.com/phrazzld/scry-flashgen/internal/generation"
	"github.com/phrazzld/scry-flashgen/internal/platform/logger"
	"github.com/phrazzld/scry-flashgen/internal/render"
	"github.com/phrazzld/scry-flashgen/internal/schema"
)

// generateOptions holds the flags of the generate command.
type generateOptions struct {
	count        int
	instructions string
	format       string
	schemaPath   string
	strict       bool
	vars         map[string]string
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate TOPIC",
		Short: "Generate a flashcard set for a topic",
		Long: `generate makes one language model call for TOPIC and prints the result.

If the reply cannot be parsed the command prints an empty set titled with the
topic, unless --strict is given, in which case it fails. With --schema the
reply is validated against a custom YAML schema file and printed as-is.`,
		Example: `  flashgen generate "Go concurrency" --count 8
  flashgen generate "French verbs" --instructions "Use present tense only" --format markdown
  flashgen generate "Photosynthesis" --schema quiz.yaml --format yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "number of flashcards (default: generation.default_count)")
	cmd.Flags().StringVarP(&opts.instructions, "instructions", "i", "", "custom instructions appended to the prompt")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(render.FormatText),
		"output format: text, json, yaml or markdown")
	cmd.Flags().StringVar(&opts.schemaPath, "schema", "", "YAML schema file describing a custom response shape")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail instead of printing an empty set when the reply cannot be parsed")
	cmd.Flags().StringToStringVar(&opts.vars, "var", nil, "extra template variables for custom prompt templates (key=value)")
	return cmd
}

func runGenerate(cmd *cobra.Command, topic string, opts *generateOptions) error {
	if strings.TrimSpace(topic) == "" {
		return domain.NewValidationError("topic", "is required", domain.ErrEmptyTopic)
	}

	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	var sch *schema.Schema
	if opts.schemaPath != "" {
		sch, err = schema.LoadFile(opts.schemaPath)
		if err != nil {
			return err
		}
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if opts.strict {
		cfg.Generation.StrictParsing = true
	}

	// Logs go to stderr so that stdout carries only the result.
	log, err := logger.SetupWithWriter(cfg.Server, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	application, err := app.New(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	count := opts.count
	if count == 0 {
		count = cfg.Generation.DefaultCount
	}
	req := domain.GenerationRequest{
		Topic:              topic,
		Count:              count,
		CustomInstructions: opts.instructions,
		Vars:               opts.vars,
	}

	return generate(cmd.Context(), cmd, application.Generator, req, sch, format)
}

// generate runs one request and writes the result to the command output.
func generate(
	ctx context.Context,
	cmd *cobra.Command,
	svc *generation.Service,
	req domain.GenerationRequest,
	sch *schema.Schema,
	format render.Format,
) error {
	if sch != nil {
		out, err := svc.GenerateStructured(ctx, req, sch)
		if err != nil {
			return describe(err)
		}
		return render.WriteValue(cmd.OutOrStdout(), format, out)
	}

	set, err := svc.GenerateFlashcards(ctx, req)
	if err != nil {
		return describe(err)
	}
	return render.WriteSet(cmd.OutOrStdout(), format, set)
}

// describe adds a short hint to errors a user can act on.
func describe(err error) error {
	switch {
	case errors.Is(err, generation.ErrUnauthorized):
		return fmt.Errorf("%w (check SCRY_LLM_API_KEY)", err)
	case errors.Is(err, generation.ErrInvalidResponse):
		return fmt.Errorf("%w (run without --strict to accept an empty result)", err)
	default:
		return err
	}
}
