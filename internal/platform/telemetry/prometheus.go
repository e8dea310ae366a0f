package telemetry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// EnvelopeMetrics counts what the mock console answered, in Prometheus form.
type EnvelopeMetrics struct {
	envelopes *prometheus.CounterVec
	faults    *prometheus.CounterVec
}

// NewEnvelopeMetrics registers the mock console collectors with reg.
// Pass prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewEnvelopeMetrics(reg prometheus.Registerer) (*EnvelopeMetrics, error) {
	m := &EnvelopeMetrics{
		envelopes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "console",
			Subsystem: "mock",
			Name:      "envelopes_total",
			Help:      "Result envelopes written by the mock console, by route, HTTP status and business code.",
		}, []string{"route", "status", "code"}),
		faults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "console",
			Subsystem: "mock",
			Name:      "faults_total",
			Help:      "Faults injected through the X-Mock-Fault header.",
		}, []string{"kind"}),
	}

	for _, c := range []prometheus.Collector{m.envelopes, m.faults} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Envelope records one written envelope.
func (m *EnvelopeMetrics) Envelope(route string, status, code int) {
	if m == nil {
		return
	}

	m.envelopes.WithLabelValues(route, strconv.Itoa(status), strconv.Itoa(code)).Inc()
}

// Fault records one injected fault.
func (m *EnvelopeMetrics) Fault(kind string) {
	if m == nil {
		return
	}

	m.faults.WithLabelValues(kind).Inc()
}
