package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type ctxKey string

const attemptIDKey ctxKey = "attemptID"

// Setup installs the default slog logger. Unknown levels fall back to info.
func Setup(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

// ParseLevel maps a config string to a slog level
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewAttemptID creates a new id for a single cast attempt.
func NewAttemptID() string {
	return uuid.NewString()
}

// WithAttemptID returns a new context containing the attempt ID.
func WithAttemptID(ctx context.Context, attemptID string) context.Context {
	return context.WithValue(ctx, attemptIDKey, attemptID)
}

// AttemptIDFromContext extracts the attempt ID from the context, if present.
func AttemptIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(attemptIDKey).(string)
	return id, ok && id != ""
}

// FromContext returns a logger that includes the attempt_id attribute when present.
func FromContext(ctx context.Context) *slog.Logger {
	if id, ok := AttemptIDFromContext(ctx); ok {
		return slog.Default().With("attempt_id", id)
	}
	return slog.Default()
}
