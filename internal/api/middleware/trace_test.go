package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/scry-flashgen/internal/api/middleware"
	"github.com/phrazzld/scry-flashgen/internal/api/shared"
	"github.com/phrazzld/scry-flashgen/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	var logBuf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var seenTraceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusNoContent)
	})

	handler := middleware.NewTraceMiddleware(base)(next)

	t.Run("generates trace id", func(t *testing.T) {
		logBuf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		require.NotEmpty(t, seenTraceID)
		assert.Equal(t, seenTraceID, w.Header().Get(shared.TraceIDHeader))
		assert.Contains(t, logBuf.String(), "request started")
		assert.Contains(t, logBuf.String(), "msg=\"inside handler\" trace_id="+seenTraceID)
	})

	t.Run("reuses incoming trace id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(shared.TraceIDHeader, "caller-trace-42")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "caller-trace-42", seenTraceID)
		assert.Equal(t, "caller-trace-42", w.Header().Get(shared.TraceIDHeader))
	})
}
