package prompt

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"
)

//go:embed templates/flashcards.tmpl
var defaultTemplate string

// DefaultTemplateName names the embedded flashcard template.
const DefaultTemplateName = "flashcards"

// ErrInvalidTemplate is returned when a custom template cannot be parsed or
// executed.
var ErrInvalidTemplate = errors.New("invalid prompt template")

// Input holds everything that goes into one prompt.
type Input struct {
	// Topic is the subject of the flashcards.
	Topic string

	// Count is the number of flashcards requested.
	Count int

	// CustomInstructions are appended verbatim after the base instructions.
	CustomInstructions string

	// FormatInstructions describe the JSON the model must return.
	FormatInstructions string

	// Vars are extra values available to custom templates as {{.Vars.key}}.
	Vars map[string]string
}

// templateData is what the base template sees.
type templateData struct {
	Topic string
	Count int
	Vars  map[string]string
}

// Builder renders prompts from a base template.
type Builder struct {
	tmpl *template.Template
}

// NewBuilder returns a Builder using the embedded flashcard template.
func NewBuilder() *Builder {
	return &Builder{
		tmpl: template.Must(newTemplate(DefaultTemplateName).Parse(defaultTemplate)),
	}
}

// NewBuilderFromTemplate parses text as the base template.
func NewBuilderFromTemplate(name, text string) (*Builder, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: template %q is empty", ErrInvalidTemplate, name)
	}

	tmpl, err := newTemplate(name).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	return &Builder{tmpl: tmpl}, nil
}

// NewBuilderFromFile reads the base template from path.
func NewBuilderFromFile(path string) (*Builder, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
			ErrInvalidTemplate, path, err)
	}
	return NewBuilderFromTemplate(path, string(content))
}

func newTemplate(name string) *template.Template {
	return template.New(name).Option("missingkey=zero")
}

// TemplateName returns the name of the base template in use.
func (b *Builder) TemplateName() string {
	return b.tmpl.Name()
}

// Build renders the prompt for in. The base instructions come first, then
// custom instructions under their own heading, then the JSON format
// instructions.
func (b *Builder) Build(in Input) (string, error) {
	var buf bytes.Buffer
	data := templateData{Topic: in.Topic, Count: in.Count, Vars: in.Vars}
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: failed to execute prompt template: %v", ErrInvalidTemplate, err)
	}

	var out strings.Builder
	out.WriteString(strings.TrimRight(buf.String(), " \t\r\n"))

	if in.CustomInstructions != "" {
		out.WriteString("\n\nAdditional Instructions:\n")
		out.WriteString(in.CustomInstructions)
	}

	out.WriteString("\n\nThe response should be in JSON format.")
	if in.FormatInstructions != "" {
		out.WriteString("\n")
		out.WriteString(in.FormatInstructions)
	}

	return out.String(), nil
}
