package app_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/scry-flashgen/internal/app"
	"github.com/phrazzld/scry-flashgen/internal/config"
	"github.com/phrazzld/scry-flashgen/internal/domain"
	"github.com/phrazzld/scry-flashgen/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "info", ShutdownTimeout: time.Second},
		LLM: config.LLMConfig{
			Provider:    "openai",
			APIKey:      "sk-test",
			Model:       "gpt-4o-mini",
			MaxTokens:   1500,
			Temperature: 0.7,
		},
		Generation: config.GenerationConfig{DefaultCount: 5, MaxCount: 10},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew(t *testing.T) {
	application, err := app.New(context.Background(), testConfig(), discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 10, application.Generator.MaxCount())

	_, err = app.New(context.Background(), nil, discardLogger())
	assert.Error(t, err)

	cfg := testConfig()
	cfg.LLM.Provider = "unknown"
	_, err = app.New(context.Background(), cfg, discardLogger())
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestNewWithCompleterAppliesGenerationConfig(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "prompt.tmpl")
	require.NoError(t, os.WriteFile(tmplPath, []byte("Write {{.Count}} cards about {{.Topic}} for {{.Vars.level}} learners."), 0o600))

	cfg := testConfig()
	cfg.Generation.PromptTemplatePath = tmplPath
	cfg.Generation.StrictParsing = true

	completer := &generation.MockCompleter{}
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool {
		return containsAll(p, "Write 2 cards about Go for beginner learners.", "The response should be in JSON format.")
	})).Return("not json at all", nil).Once()

	application, err := app.NewWithCompleter(cfg, discardLogger(), completer)
	require.NoError(t, err)

	_, err = application.Generator.GenerateFlashcards(context.Background(), domain.GenerationRequest{
		Topic: "Go",
		Count: 2,
		Vars:  map[string]string{"level": "beginner"},
	})
	assert.ErrorIs(t, err, generation.ErrInvalidResponse, "strict parsing is enabled from config")
	completer.AssertExpectations(t)
}

func TestNewWithCompleterBadTemplate(t *testing.T) {
	cfg := testConfig()
	cfg.Generation.PromptTemplatePath = filepath.Join(t.TempDir(), "missing.tmpl")

	_, err := app.NewWithCompleter(cfg, discardLogger(), &generation.MockCompleter{})
	assert.Error(t, err)
}

func TestServeListener(t *testing.T) {
	application, err := app.NewWithCompleter(testConfig(), discardLogger(), &generation.MockCompleter{})
	require.NoError(t, err)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- application.ServeListener(ctx, listener)
	}()

	url := fmt.Sprintf("http://%s/health", listener.Addr().String())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:noctx
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
