package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/console-client/internal/platform/logging"
)

// Logger stores base in the request context so later middleware and handlers
// log through it. Register it before RequestID and CorrelationID.
func Logger(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), base))
		c.Next()
	}
}

// Logging logs one line per completed request. Health probes under /-/ and the
// given paths are skipped. 4xx responses log at warn, 5xx at error.
func Logging(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok || strings.Contains(path, "/-/") {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		level := slog.LevelInfo

		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("query", c.Request.URL.RawQuery),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.Int("bytes", c.Writer.Size()),
			slog.String("client_ip", c.ClientIP()),
		}

		if code, ok := c.Get(envelopeCodeKey); ok {
			attrs = append(attrs, slog.Any("code", code))
		}

		logging.FromContext(c.Request.Context()).Log(c.Request.Context(), level, "request completed", attrs...)
	}
}
