package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/console-client/internal/adapters/http/dto"
	"github.com/jsamuelsen/console-client/internal/platform/logging"
)

// Recovery turns a handler panic into a 500 envelope with code 500 and logs
// the stack. Register it first so it covers every later middleware.
// http.ErrAbortHandler is re-raised so the server drops the connection.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			if err, ok := r.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(r)
			}

			logging.FromContext(c.Request.Context()).Error("panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
				slog.String("trace_id", dto.TraceID(c)),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			dto.Abort(c, http.StatusInternalServerError, dto.CodeInternal, "an internal error occurred")
		}()

		c.Next()
	}
}
