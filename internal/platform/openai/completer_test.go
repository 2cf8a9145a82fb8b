package openai_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/scry-flashgen/internal/config"
	"github.com/phrazzld/scry-flashgen/internal/generation"
	"github.com/phrazzld/scry-flashgen/internal/platform/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(baseURL string) config.LLMConfig {
	return config.LLMConfig{
		Provider:    "openai",
		APIKey:      "sk-test-key",
		Model:       "gpt-test",
		BaseURL:     baseURL,
		MaxTokens:   1500,
		Temperature: 0.7,
		Headers:     map[string]string{"X-Team": "study"},
	}
}

// capturedRequest holds what the fake upstream received.
type capturedRequest struct {
	path   string
	header http.Header
	body   map[string]any
	calls  int
}

// fakeOpenAI starts a server answering every request with status and body.
func fakeOpenAI(t *testing.T, status int, body string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.calls++
		captured.path = r.URL.Path
		captured.header = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &captured.body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func completionBody(content, finishReason string) string {
	payload, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-test",
		"choices": []any{
			map[string]any{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finishReason,
			},
		},
	})
	return string(payload)
}

func TestNewCompleterValidation(t *testing.T) {
	_, err := openai.NewCompleter(nil, testConfig(""))
	assert.Error(t, err)

	cfg := testConfig("")
	cfg.APIKey = ""
	_, err = openai.NewCompleter(newTestLogger(), cfg)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	cfg = testConfig("")
	cfg.Model = ""
	_, err = openai.NewCompleter(newTestLogger(), cfg)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestCompleteSuccess(t *testing.T) {
	reply := "```json\n{\"title\":\"Go\",\"flashcards\":[]}\n```"
	srv, captured := fakeOpenAI(t, http.StatusOK, completionBody(reply, "stop"))

	// No trailing slash: the base path must still be kept.
	c, err := openai.NewCompleter(newTestLogger(), testConfig(srv.URL+"/v1"))
	require.NoError(t, err)
	assert.Equal(t, "gpt-test", c.Model())

	text, err := c.Complete(context.Background(), "Generate a set of 5 flashcards on the topic: Go.")
	require.NoError(t, err)
	assert.Equal(t, reply, text)

	assert.Equal(t, "/v1/chat/completions", captured.path)
	assert.Equal(t, "Bearer sk-test-key", captured.header.Get("Authorization"))
	assert.Equal(t, "study", captured.header.Get("X-Team"))
	assert.Equal(t, "gpt-test", captured.body["model"])
	assert.EqualValues(t, 1500, captured.body["max_completion_tokens"])
	assert.InDelta(t, 0.7, captured.body["temperature"], 1e-9)

	messages, ok := captured.body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "Generate a set of 5 flashcards on the topic: Go.", msg["content"])
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`,
			wantErr: generation.ErrUnauthorized,
		},
		{
			name:    "forbidden",
			status:  http.StatusForbidden,
			body:    `{"error":{"message":"Project does not have access","type":"invalid_request_error"}}`,
			wantErr: generation.ErrUnauthorized,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"error":{"message":"boom","type":"server_error"}}`,
			wantErr: generation.ErrGenerationFailed,
		},
		{
			name:    "empty choices",
			status:  http.StatusOK,
			body:    `{"id":"x","object":"chat.completion","created":1,"model":"gpt-test","choices":[]}`,
			wantErr: generation.ErrGenerationFailed,
		},
		{
			name:    "content filter",
			status:  http.StatusOK,
			body:    completionBody("", "content_filter"),
			wantErr: generation.ErrContentBlocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, captured := fakeOpenAI(t, tt.status, tt.body)

			c, err := openai.NewCompleter(newTestLogger(), testConfig(srv.URL))
			require.NoError(t, err)

			text, err := c.Complete(context.Background(), "prompt")
			assert.Empty(t, text)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 1, captured.calls, "exactly one request, no retries")
		})
	}
}
