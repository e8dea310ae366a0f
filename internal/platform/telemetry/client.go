package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ClientMetrics records outbound console calls made by the transport.
type ClientMetrics struct {
	duration metric.Float64Histogram
	total    metric.Int64Counter
}

// NewClientMetrics creates the transport instruments.
func NewClientMetrics() (*ClientMetrics, error) {
	meter := Meter()

	duration, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of console requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	total, err := meter.Int64Counter(
		"http.client.request.total",
		metric.WithDescription("Total number of console requests"),
	)
	if err != nil {
		return nil, err
	}

	return &ClientMetrics{duration: duration, total: total}, nil
}

// Record adds one request. Status 0 means no response was obtained.
func (m *ClientMetrics) Record(ctx context.Context, service, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("service", service),
		attribute.String("method", method),
		attribute.Int("status_code", status),
	)

	m.duration.Record(ctx, elapsed.Seconds(), attrs)
	m.total.Add(ctx, 1, attrs)
}

// ResultCounter counts normalized outcomes per operation and failure domain.
type ResultCounter struct {
	total metric.Int64Counter
}

// NewResultCounter creates the console.result.total counter.
// Instrument errors are reported to the global otel handler and yield a nil counter,
// which is safe to use.
func NewResultCounter() *ResultCounter {
	total, err := Meter().Int64Counter(
		"console.result.total",
		metric.WithDescription("Normalized console results by operation, failure domain and code"),
	)
	if err != nil {
		otel.Handle(err)
		return nil
	}

	return &ResultCounter{total: total}
}

// Add records one result.
func (c *ResultCounter) Add(ctx context.Context, operation, domain string, code int) {
	if c == nil {
		return
	}

	c.total.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("domain", domain),
		attribute.Int("code", code),
	))
}
