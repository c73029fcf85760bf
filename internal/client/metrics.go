package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records backend call counts and latencies
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the backend call collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "askdoc_console",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Backend requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "askdoc_console",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Backend request latency by operation.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"operation"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}
	return m
}

func (m *Metrics) observe(op string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "transport_error"
	}
	m.requests.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}
