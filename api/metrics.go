package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for one server. Each Handler gets
// its own registry so tests can build several servers in one process.
type Metrics struct {
	Registry *prometheus.Registry

	RequestDuration *prometheus.HistogramVec
	Operations      *prometheus.CounterVec
	Categories      prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "budget_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
			},
			[]string{"method", "route", "status"},
		),

		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budget_ledger_operations_total",
				Help: "Ledger operations by name and result",
			},
			[]string{"operation", "result"},
		),

		Categories: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "budget_ledger_categories",
				Help: "Number of categories currently in the ledger",
			},
		),
	}

	m.Registry.MustRegister(m.RequestDuration, m.Operations, m.Categories)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observe(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Operations.WithLabelValues(operation, result).Inc()
}
