package shared

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ContextKey is the key type for values stored in a request context.
type ContextKey string

const (
	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDHeader carries the trace ID in requests and responses
	TraceIDHeader = "X-Trace-ID"

	// TraceIDLength is the number of characters of a generated trace ID
	TraceIDLength = 21
)

// validTraceID limits caller-supplied trace IDs to a safe alphabet.
var validTraceID = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

// SetTraceID adds a trace ID to the context. A well-formed incoming ID is
// reused so that callers can correlate their own logs; otherwise a new one
// is generated.
func SetTraceID(ctx context.Context, incoming string) context.Context {
	traceID := incoming
	if !validTraceID.MatchString(traceID) {
		traceID = generateTraceID()
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID creates a URL-safe random ID. If the random source fails it
// falls back to a UUID rather than a static value.
func generateTraceID() string {
	id, err := gonanoid.New(TraceIDLength)
	if err != nil {
		slog.Error("failed to generate trace ID",
			"error", err,
			"fallback", "uuid")
		return uuid.NewString()
	}
	return id
}
