package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// initFeedbackMetrics initializes feedback and reward metrics.
func (m *Manager) initFeedbackMetrics(cfg Config) {
	m.feedback = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_total",
			Help: "Total number of recorded feedback events by vote",
		},
		[]string{"vote"},
	)

	m.rewards = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feedback_reward",
			Help:    "Computed reward values",
			Buckets: cfg.RewardBuckets,
		},
	)

	m.registry.MustRegister(m.feedback)
	m.registry.MustRegister(m.rewards)
}

// RecordFeedback records one processed feedback event.
func (m *Manager) RecordFeedback(vote string, reward float64) {
	if !m.enabled {
		return
	}
	m.feedback.WithLabelValues(vote).Inc()
	m.rewards.Observe(reward)
}
