// Package observability holds the process logger and request-id
// plumbing shared by the HTTP layer.
package observability

import (
	"context"
	"log/slog"
	"os"
)

type ctxKey string

const ctxKeyRequestID ctxKey = "request_id"

// process-wide logger, JSON to stderr so stdout stays clean for the
// CLI subcommands.
var logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))

// Logger returns the process logger.
func Logger() *slog.Logger {
	return logger
}

// WithRequestID stores a request id in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// LoggerFromContext returns the process logger annotated with the
// context's request id when present.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	reqID, _ := ctx.Value(ctxKeyRequestID).(string)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}
