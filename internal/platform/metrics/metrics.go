package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	AuthDecisions    *prometheus.CounterVec
	ReturnsSubmitted prometheus.Counter
	RequestLatency   *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		AuthDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "taxgate_authorization_decisions_total",
			Help: "Authorization gate decisions by result",
		}, []string{"result"}),
		ReturnsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taxgate_returns_submitted_total",
			Help: "Total number of VAT returns accepted",
		}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taxgate_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// RecordAuthDecision counts one gate decision. Result is one of "allowed",
// "unauthorized", "error".
func (m *Metrics) RecordAuthDecision(result string) {
	m.AuthDecisions.WithLabelValues(result).Inc()
}

// IncrementReturnsSubmitted counts one accepted VAT return.
func (m *Metrics) IncrementReturnsSubmitted() {
	m.ReturnsSubmitted.Inc()
}

// ObserveRequest records one request's latency.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	m.RequestLatency.WithLabelValues(route, status).Observe(d.Seconds())
}
