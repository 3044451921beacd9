// Package metrics provides Prometheus metrics for the blink launchpad.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "blink_launchpad"

// Metrics holds all Prometheus metrics of one server instance.
// Each instance owns its registry so tests can build as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	// Editor metrics
	ActionURLsBuilt    prometheus.Counter
	ShareableLinks     prometheus.Counter
	Submissions        *prometheus.CounterVec
	ActiveSessions     prometheus.Gauge
	ResolutionsStarted prometheus.Counter
	ResolutionsStale   prometheus.Counter

	// HTTP metrics
	ActionRequests   *prometheus.CounterVec
	MockCreations    *prometheus.CounterVec
	RequestDurations *prometheus.HistogramVec
}

func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = defaultNamespace
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		ActionURLsBuilt: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "editor",
			Name:      "action_urls_built_total",
			Help:      "Total number of donate-sol action URLs built on submit",
		}),
		ShareableLinks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "editor",
			Name:      "shareable_links_total",
			Help:      "Total number of shareable blink links produced",
		}),
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "editor",
			Name:      "submissions_total",
			Help:      "Total number of submits by action type and status",
		}, []string{"action_type", "status"}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "editor",
			Name:      "active_sessions",
			Help:      "Current number of editing sessions",
		}),
		ResolutionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "resolutions_started_total",
			Help:      "Total number of action URL resolutions started",
		}),
		ResolutionsStale: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "resolutions_discarded_total",
			Help:      "Total number of resolution results discarded because a newer request started",
		}),

		ActionRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "action_requests_total",
			Help:      "Total number of donate-sol action requests by method and status code",
		}, []string{"method", "code"}),
		MockCreations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "mock_creations_total",
			Help:      "Total number of mock creation requests by kind and status",
		}, []string{"kind", "status"}),
		RequestDurations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// Registry returns the registry the metrics are registered with
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the HTTP handler for the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordSubmission(actionType, status string) {
	m.Submissions.WithLabelValues(actionType, status).Inc()
}

func (m *Metrics) RecordMockCreation(kind, status string) {
	m.MockCreations.WithLabelValues(kind, status).Inc()
}

func (m *Metrics) RecordActionRequest(method, code string) {
	m.ActionRequests.WithLabelValues(method, code).Inc()
}

func (m *Metrics) RecordRequestDuration(route string, seconds float64) {
	m.RequestDurations.WithLabelValues(route).Observe(seconds)
}
