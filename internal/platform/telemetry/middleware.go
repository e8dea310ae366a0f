package telemetry

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// HeaderTraceID echoes the server span's trace ID so a console client can
// quote it when reporting a failed call.
const HeaderTraceID = "X-Trace-ID"

type serverInstruments struct {
	duration metric.Float64Histogram
	inflight metric.Int64UpDownCounter
}

func newServerInstruments() (*serverInstruments, error) {
	meter := Meter()

	duration, err := meter.Float64Histogram("console.mock.request.duration",
		metric.WithDescription("Mock console request duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	inflight, err := meter.Int64UpDownCounter("console.mock.requests.inflight",
		metric.WithDescription("Mock console requests being served"),
	)
	if err != nil {
		return nil, err
	}

	return &serverInstruments{duration: duration, inflight: inflight}, nil
}

// ServerMiddleware is the OTel chain of the mock console: otelgin tracing,
// then request metrics. The value of each tagHeaders header present on a
// request is recorded as http.request.header.<name>.
func ServerMiddleware(serviceName string, tagHeaders ...string) []gin.HandlerFunc {
	inst, err := newServerInstruments()
	if err != nil {
		otel.Handle(err)
	}

	keys := make([]attribute.Key, len(tagHeaders))
	for i, h := range tagHeaders {
		keys[i] = attribute.Key("http.request.header." + strings.ToLower(h))
	}

	measure := func(c *gin.Context) {
		if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.HasTraceID() {
			c.Header(HeaderTraceID, sc.TraceID().String())
		}

		if inst == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		start := time.Now()

		attrs := []attribute.KeyValue{
			attribute.String("http.request.method", c.Request.Method),
			attribute.String("http.route", c.FullPath()),
		}

		for i, h := range tagHeaders {
			if v := c.GetHeader(h); v != "" {
				attrs = append(attrs, keys[i].String(v))
			}
		}

		inst.inflight.Add(ctx, 1, metric.WithAttributes(attrs...))
		defer inst.inflight.Add(ctx, -1, metric.WithAttributes(attrs...))

		c.Next()

		attrs = append(attrs, attribute.Int("http.response.status_code", c.Writer.Status()))
		inst.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attrs...))
	}

	return []gin.HandlerFunc{otelgin.Middleware(serviceName), measure}
}
