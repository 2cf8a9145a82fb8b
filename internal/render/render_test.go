package render_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/phrazzld/scry-flashgen/internal/domain"
	"github.com/phrazzld/scry-flashgen/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func sampleSet() *domain.FlashcardSet {
	return &domain.FlashcardSet{
		Title: "Go Concurrency",
		Flashcards: []domain.Flashcard{
			{Front: "What is a goroutine?", Back: "A lightweight thread managed by the Go runtime.", Explanation: "Started with the `go` keyword."},
			{Front: "What does a channel do?", Back: "Passes values between goroutines."},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    render.Format
		wantErr bool
	}{
		{"", render.FormatText, false},
		{"TEXT", render.FormatText, false},
		{"json", render.FormatJSON, false},
		{"yml", render.FormatYAML, false},
		{"md", render.FormatMarkdown, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := render.ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, render.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Generated 2 flashcards for 'Go Concurrency'", render.Summary(sampleSet()))
	assert.Equal(t, "Generated 0 flashcards for 'Rust'", render.Summary(domain.NewFallbackSet("Rust")))
}

func TestWriteSetText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.WriteSet(&buf, render.FormatText, sampleSet()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Generated 2 flashcards for 'Go Concurrency'\n"))
	assert.Contains(t, out, "Flashcard 1: What is a goroutine?")
	assert.Contains(t, out, "Explanation: Started with the `go` keyword.")
	assert.Contains(t, out, "Flashcard 2: What does a channel do?")
	assert.Equal(t, 1, strings.Count(out, "Explanation:"), "cards without explanation print none")
}

func TestWriteSetJSONAndYAML(t *testing.T) {
	var jsonBuf bytes.Buffer
	require.NoError(t, render.WriteSet(&jsonBuf, render.FormatJSON, sampleSet()))
	var fromJSON domain.FlashcardSet
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &fromJSON))
	assert.Equal(t, *sampleSet(), fromJSON)
	assert.NotContains(t, jsonBuf.String(), `"explanation": ""`)

	var yamlBuf bytes.Buffer
	require.NoError(t, render.WriteSet(&yamlBuf, render.FormatYAML, sampleSet()))
	var fromYAML domain.FlashcardSet
	require.NoError(t, yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML))
	assert.Equal(t, *sampleSet(), fromYAML)
}

func TestWriteSetMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.WriteSet(&buf, render.FormatMarkdown, sampleSet()))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Go Concurrency\n"))
	assert.Contains(t, out, "## Flashcard 2: What does a channel do?")
	assert.Contains(t, out, "> Started with the `go` keyword.")
}

func TestWriteSetErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, render.WriteSet(&buf, render.FormatText, nil))
	assert.ErrorIs(t, render.WriteSet(&buf, render.Format("pdf"), sampleSet()), render.ErrUnknownFormat)
}

func TestWriteValue(t *testing.T) {
	value := map[string]any{"term": "goroutine", "score": 3}

	var buf bytes.Buffer
	require.NoError(t, render.WriteValue(&buf, render.FormatMarkdown, value))
	assert.True(t, strings.HasPrefix(buf.String(), "```json\n"))
	assert.Contains(t, buf.String(), `"term": "goroutine"`)

	buf.Reset()
	require.NoError(t, render.WriteValue(&buf, render.FormatYAML, value))
	assert.Contains(t, buf.String(), "term: goroutine")
}

func TestMarkdownHTML(t *testing.T) {
	md := render.NewMarkdown()

	out := string(md.HTML("Use **channels** and `select`"))
	assert.Contains(t, out, "<strong>channels</strong>")
	assert.Contains(t, out, "<code>select</code>")

	unsafe := string(md.HTML("<script>alert(1)</script>"))
	assert.NotContains(t, unsafe, "<script>")
}
