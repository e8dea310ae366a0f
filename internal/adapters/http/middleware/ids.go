// Package middleware holds the gin middleware of the mock console and the
// request-scoped IDs shared with the console transport.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/console-client/internal/platform/logging"
)

const (
	// HeaderRequestID carries the per-request ID.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID carries the ID of a whole console session, e.g. one
	// consolectl overview fanning out to several endpoints.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID is the gin key of the request ID.
	ContextKeyRequestID = logging.KeyRequestID

	// ContextKeyCorrelationID is the gin key of the correlation ID.
	ContextKeyCorrelationID = logging.KeyCorrelationID
)

// RequestID reads X-Request-ID, or generates one, and echoes it on the
// response. The ID is stored in the gin context, the request context and the
// request logger.
func RequestID() gin.HandlerFunc {
	return propagateID(HeaderRequestID, ContextKeyRequestID, func(ctx context.Context, id string) context.Context {
		return logging.WithRequestID(ContextWithRequestID(ctx, id), id)
	})
}

// CorrelationID does for X-Correlation-ID what RequestID does for X-Request-ID.
func CorrelationID() gin.HandlerFunc {
	return propagateID(HeaderCorrelationID, ContextKeyCorrelationID, func(ctx context.Context, id string) context.Context {
		return logging.WithCorrelationID(ContextWithCorrelationID(ctx, id), id)
	})
}

// GetRequestID returns the request ID, or "" outside the middleware.
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID, or "" outside the middleware.
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}

func propagateID(header, key string, enrich func(context.Context, string) context.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(header)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(key, id)
		c.Header(header, id)
		c.Request = c.Request.WithContext(enrich(c.Request.Context(), id))

		c.Next()
	}
}

type idKey int

const (
	requestIDKey idKey = iota
	correlationIDKey
)

// ContextWithRequestID stores a request ID for the console transport to send
// as X-Request-ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// ContextWithCorrelationID stores a correlation ID for the console transport
// to send as X-Correlation-ID.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// RequestIDFromContext returns the stored request ID, or "".
func RequestIDFromContext(ctx context.Context) string {
	return idFrom(ctx, requestIDKey)
}

// CorrelationIDFromContext returns the stored correlation ID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return idFrom(ctx, correlationIDKey)
}

func idFrom(ctx context.Context, key idKey) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(key).(string)

	return id
}
