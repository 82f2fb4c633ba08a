package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application collectors on a private registry.
type Metrics struct {
	Registry       *prometheus.Registry
	RequestsTotal  *prometheus.CounterVec
	RequestLatency *prometheus.HistogramVec
	LineMutations  *prometheus.CounterVec
	UserMutations  *prometheus.CounterVec
	ExportsTotal   *prometheus.CounterVec
	LoginsTotal    *prometheus.CounterVec
}

// New registers the collectors under the given namespace.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		RequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		LineMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "line_mutations_total",
			Help:      "Lines created, updated or deleted.",
		}, []string{"operation"}),
		UserMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "user_mutations_total",
			Help:      "Users created, updated or deleted.",
		}, []string{"operation"}),
		ExportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Line exports by format.",
		}, []string{"format"}),
		LoginsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.RequestLatency,
		m.LineMutations,
		m.UserMutations,
		m.ExportsTotal,
		m.LoginsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// IncLineMutation counts a line create, update or delete. Safe on a nil receiver.
func (m *Metrics) IncLineMutation(operation string) {
	if m == nil {
		return
	}
	m.LineMutations.WithLabelValues(operation).Inc()
}

// IncUserMutation counts a user create, update or delete. Safe on a nil receiver.
func (m *Metrics) IncUserMutation(operation string) {
	if m == nil {
		return
	}
	m.UserMutations.WithLabelValues(operation).Inc()
}

// IncExport counts a finished export. Safe on a nil receiver.
func (m *Metrics) IncExport(format string) {
	if m == nil {
		return
	}
	m.ExportsTotal.WithLabelValues(format).Inc()
}

// IncLogin counts a login attempt. Safe on a nil receiver.
func (m *Metrics) IncLogin(outcome string) {
	if m == nil {
		return
	}
	m.LoginsTotal.WithLabelValues(outcome).Inc()
}
