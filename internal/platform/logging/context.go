package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Attribute keys attached to context loggers. The console transport and the
// mock server use the same names so one grep follows a call across both.
const (
	KeyRequestID     = "request_id"
	KeyCorrelationID = "correlation_id"
	KeyOperation     = "operation"
)

type loggerKey struct{}

var fallback atomic.Pointer[slog.Logger]

func init() {
	fallback.Store(slog.Default())
}

// FromContext returns the logger carried by ctx, or the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}

	return fallback.Load()
}

// WithContext returns a copy of ctx carrying logger.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// With narrows the context logger with attrs.
func With(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}

	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}

	return WithContext(ctx, FromContext(ctx).With(args...))
}

// WithRequestID tags the context logger with a request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return With(ctx, slog.String(KeyRequestID, id))
}

// WithCorrelationID tags the context logger with a correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return With(ctx, slog.String(KeyCorrelationID, id))
}

// WithOperation tags the context logger with a console operation name.
func WithOperation(ctx context.Context, op string) context.Context {
	return With(ctx, slog.String(KeyOperation, op))
}

// SetDefault replaces the logger used when a context carries none, and the
// slog default.
func SetDefault(logger *slog.Logger) {
	fallback.Store(logger)
	slog.SetDefault(logger)
}
