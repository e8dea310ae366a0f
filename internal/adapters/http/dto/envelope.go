// Package dto holds the mock console's request and response shapes.
package dto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/console-client/internal/domain"
	"github.com/jsamuelsen/console-client/internal/platform/logging"
)

// ContextKeyEnvelopeCode is the gin key holding the code of the envelope written
// for the current request. Metrics middleware reads it after the handler ran.
const ContextKeyEnvelopeCode = "envelope_code"

// Envelope codes used by the mock console.
const (
	CodeOK           = domain.CodeSuccess
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeConflict     = 409
	CodeInternal     = domain.CodeFailure
)

// MessageBadCredentials is returned for a failed login.
const MessageBadCredentials = "bad credentials"

// Envelope is the body of every console API response.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	TraceID string `json:"traceId,omitempty"`
}

// FromError maps a store error to an HTTP status and envelope.
//
// Validation failures are rejected at the HTTP level. Missing entities and
// conflicts are business failures and travel as 200 with a non-zero code.
func FromError(err error) (int, Envelope) {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest, Envelope{Code: CodeBadRequest, Message: err.Error()}
	case domain.IsNotFound(err):
		return http.StatusOK, Envelope{Code: CodeNotFound, Message: err.Error()}
	case domain.IsConflict(err):
		return http.StatusOK, Envelope{Code: CodeConflict, Message: err.Error()}
	case domain.IsUnauthorized(err):
		return http.StatusUnauthorized, Envelope{Code: CodeUnauthorized, Message: "unauthorized"}
	default:
		return http.StatusInternalServerError, Envelope{Code: CodeInternal, Message: "an internal error occurred"}
	}
}

// OK writes a success envelope.
func OK(c *gin.Context, data any) {
	write(c, http.StatusOK, Envelope{Code: CodeOK, Data: data})
}

// Fail writes a failure envelope with the given HTTP status.
func Fail(c *gin.Context, status, code int, message string) {
	write(c, status, Envelope{Code: code, Message: message})
}

// HandleError maps err with FromError and writes the result.
// Internal errors are logged with their cause.
func HandleError(c *gin.Context, err error) {
	status, env := FromError(err)

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("internal error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
		)
	}

	write(c, status, env)
}

// HandleBindError writes a 400 envelope for a binding or validation failure.
func HandleBindError(c *gin.Context, err error) {
	msg := "request validation failed"

	switch details := ValidationErrors(err); {
	case len(details) > 0:
		msg = details.String()
	case errors.Is(err, ErrBinding):
		msg = "malformed request body"
	case domain.IsValidation(err):
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			msg = ve.Error()
		}
	}

	write(c, http.StatusBadRequest, Envelope{Code: CodeBadRequest, Message: msg})
}

// Abort writes a failure envelope and stops the handler chain.
func Abort(c *gin.Context, status, code int, message string) {
	env := Envelope{Code: code, Message: message, TraceID: TraceID(c)}
	c.Set(ContextKeyEnvelopeCode, code)
	c.AbortWithStatusJSON(status, env)
}

// TraceID returns the current trace ID, or "" when the request is not traced.
func TraceID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	return ""
}

func write(c *gin.Context, status int, env Envelope) {
	env.TraceID = TraceID(c)
	c.Set(ContextKeyEnvelopeCode, env.Code)
	c.JSON(status, env)
}
