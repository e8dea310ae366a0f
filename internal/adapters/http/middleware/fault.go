package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/console-client/internal/adapters/http/dto"
	"github.com/jsamuelsen/console-client/internal/platform/logging"
	"github.com/jsamuelsen/console-client/internal/platform/telemetry"
)

// HeaderMockFault selects a fault to inject instead of handling the request.
//
//	reset        the connection is closed without a response
//	timeout      the response is held until the request context ends
//	status-<n>   a bare HTTP n is written with no envelope
const HeaderMockFault = "X-Mock-Fault"

// Fault kinds, as counted by telemetry.EnvelopeMetrics.Fault.
const (
	FaultReset   = "reset"
	FaultTimeout = "timeout"
	FaultStatus  = "status"
)

const faultStatusPrefix = "status-"

// RequestDeadline gives every console request d to complete. A timeout fault
// holds until this deadline. Non-positive d leaves the context unbounded.
func RequestDeadline(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Faults injects the fault named by X-Mock-Fault. maxHold caps how long a
// timeout fault waits when the request context has no deadline.
func Faults(metrics *telemetry.EnvelopeMetrics, maxHold time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		fault := strings.ToLower(strings.TrimSpace(c.GetHeader(HeaderMockFault)))
		if fault == "" {
			c.Next()
			return
		}

		logger := logging.FromContext(c.Request.Context())

		switch {
		case fault == FaultReset:
			metrics.Fault(FaultReset)
			logger.Debug("injecting fault", slog.String("fault", fault))
			reset(c)

		case fault == FaultTimeout:
			metrics.Fault(FaultTimeout)
			logger.Debug("injecting fault", slog.String("fault", fault))
			hold(c, maxHold)

		case strings.HasPrefix(fault, faultStatusPrefix):
			status, err := strconv.Atoi(strings.TrimPrefix(fault, faultStatusPrefix))
			if err != nil || status < 200 || status > 599 {
				dto.Abort(c, http.StatusBadRequest, dto.CodeBadRequest, "invalid "+HeaderMockFault+": "+fault)
				return
			}

			metrics.Fault(FaultStatus)
			logger.Debug("injecting fault", slog.String("fault", fault))
			c.Data(status, "text/plain; charset=utf-8", []byte(http.StatusText(status)))
			c.Abort()

		default:
			dto.Abort(c, http.StatusBadRequest, dto.CodeBadRequest, "unknown "+HeaderMockFault+": "+fault)
		}
	}
}

// reset makes net/http drop the connection without writing a response.
func reset(c *gin.Context) {
	c.Abort()
	panic(http.ErrAbortHandler)
}

func hold(c *gin.Context, maxHold time.Duration) {
	timer := time.NewTimer(maxHold)
	defer timer.Stop()

	select {
	case <-c.Request.Context().Done():
	case <-timer.C:
	}

	c.AbortWithStatus(http.StatusGatewayTimeout)
}
