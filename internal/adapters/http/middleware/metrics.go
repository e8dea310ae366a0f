package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/console-client/internal/adapters/http/dto"
	"github.com/jsamuelsen/console-client/internal/platform/telemetry"
)

const envelopeCodeKey = dto.ContextKeyEnvelopeCode

// Envelopes counts every envelope written, labelled by route template, HTTP
// status and business code. Responses without an envelope are not counted.
func Envelopes(metrics *telemetry.EnvelopeMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		code, ok := c.Get(envelopeCodeKey)
		if !ok {
			return
		}

		n, ok := code.(int)
		if !ok {
			return
		}

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.Envelope(route, c.Writer.Status(), n)
	}
}
