package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/phrazzld/scry-flashgen/internal/domain"
	"go.yaml.in/yaml/v3"
)

// Format names an output format of the CLI.
type Format string

// Supported output formats.
const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the supported formats in display order.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatMarkdown}
}

// ParseFormat resolves a case-insensitive format name. "md" and "yml" are
// accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Summary is the headline shown above a generated set.
func Summary(set *domain.FlashcardSet) string {
	title := ""
	if set != nil {
		title = set.Title
	}
	return fmt.Sprintf("Generated %d flashcards for '%s'", set.Len(), title)
}

// WriteSet writes set to w in the given format.
func WriteSet(w io.Writer, format Format, set *domain.FlashcardSet) error {
	if set == nil {
		return errors.New("flashcard set is nil")
	}
	switch format {
	case FormatText:
		return writeText(w, set)
	case FormatJSON:
		return writeJSON(w, set)
	case FormatYAML:
		return writeYAML(w, set)
	case FormatMarkdown:
		return writeMarkdown(w, set)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteValue writes an arbitrary decoded record, as produced for custom
// schemas. Text and Markdown fall back to indented JSON.
func WriteValue(w io.Writer, format Format, v any) error {
	switch format {
	case FormatYAML:
		return writeYAML(w, v)
	case FormatText, FormatJSON:
		return writeJSON(w, v)
	case FormatMarkdown:
		if _, err := io.WriteString(w, "```json\n"); err != nil {
			return err
		}
		if err := writeJSON(w, v); err != nil {
			return err
		}
		_, err := io.WriteString(w, "```\n")
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeText(w io.Writer, set *domain.FlashcardSet) error {
	var b strings.Builder
	b.WriteString(Summary(set))
	b.WriteString("\n")
	for i, card := range set.Flashcards {
		fmt.Fprintf(&b, "\nFlashcard %d: %s\n", i+1, card.Front)
		fmt.Fprintf(&b, "  Back: %s\n", card.Back)
		if card.HasExplanation() {
			fmt.Fprintf(&b, "  Explanation: %s\n", card.Explanation)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeMarkdown(w io.Writer, set *domain.FlashcardSet) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", set.Title)
	for i, card := range set.Flashcards {
		fmt.Fprintf(&b, "\n## Flashcard %d: %s\n\n%s\n", i+1, card.Front, card.Back)
		if card.HasExplanation() {
			fmt.Fprintf(&b, "\n> %s\n", card.Explanation)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
