// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for RateUpdatesTotal.
const (
	OutcomeUpdated = "updated"
	OutcomeAlerted = "alerted"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Metrics groups every collector the service exports. Each instance owns its
// registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	RateUpdatesTotal    *prometheus.CounterVec
	LoginAttemptsTotal  *prometheus.CounterVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldrate_http_requests_total",
				Help: "HTTP requests by route pattern, method and status code",
			},
			[]string{"route", "method", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "goldrate_http_request_duration_seconds",
				Help:    "HTTP request latency by route pattern",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		RateUpdatesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldrate_rate_updates_total",
				Help: "Rate update calls by outcome",
			},
			[]string{"outcome"},
		),
		LoginAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldrate_login_attempts_total",
				Help: "Login attempts by result",
			},
			[]string{"result"},
		),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRateUpdate counts one rate update outcome. Safe on a nil receiver.
func (m *Metrics) ObserveRateUpdate(outcome string) {
	if m == nil {
		return
	}
	m.RateUpdatesTotal.WithLabelValues(outcome).Inc()
}

// ObserveLogin counts one login attempt. Safe on a nil receiver.
func (m *Metrics) ObserveLogin(success bool) {
	if m == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.LoginAttemptsTotal.WithLabelValues(result).Inc()
}
