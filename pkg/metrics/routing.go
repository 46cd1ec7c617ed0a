package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// initRoutingMetrics initializes query handling and action selection metrics.
func (m *Manager) initRoutingMetrics(cfg Config) {
	m.queries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queries_total",
			Help: "Total number of handled queries by domain and fallback use",
		},
		[]string{"domain", "fallback"},
	)

	m.queryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "query_duration_seconds",
			Help:    "End-to-end query handling duration in seconds",
			Buckets: cfg.QueryDurationBuckets,
		},
	)

	m.actionSelection = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "action_selections_total",
			Help: "Total number of policy action selections by mode",
		},
		[]string{"mode"},
	)

	m.registry.MustRegister(m.queries)
	m.registry.MustRegister(m.queryDuration)
	m.registry.MustRegister(m.actionSelection)
}

// RecordQuery records one handled query.
func (m *Manager) RecordQuery(domain string, fallback bool, duration time.Duration) {
	if !m.enabled {
		return
	}
	fb := "false"
	if fallback {
		fb = "true"
	}
	m.queries.WithLabelValues(domain, fb).Inc()
	m.queryDuration.Observe(duration.Seconds())
}

// RecordActionSelection records whether a selection explored or exploited.
func (m *Manager) RecordActionSelection(exploratory bool) {
	if !m.enabled {
		return
	}
	mode := "exploit"
	if exploratory {
		mode = "explore"
	}
	m.actionSelection.WithLabelValues(mode).Inc()
}
