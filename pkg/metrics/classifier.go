package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// initClassifierMetrics initializes classification and retrain metrics.
func (m *Manager) initClassifierMetrics(cfg Config) {
	m.classifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classifications_total",
			Help: "Total number of query classifications by predicted domain",
		},
		[]string{"domain"},
	)

	m.classificationConfidence = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "classification_confidence",
			Help:    "Confidence of query classifications",
			Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		},
	)

	m.retrains = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_retrains_total",
			Help: "Total number of model retrain attempts by result",
		},
		[]string{"result"},
	)

	m.modelAccuracy = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_holdout_accuracy",
			Help: "Holdout accuracy of the active model snapshot",
		},
	)

	m.modelVersion = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_snapshot_version",
			Help: "Version of the active model snapshot",
		},
	)

	m.registry.MustRegister(m.classifications)
	m.registry.MustRegister(m.classificationConfidence)
	m.registry.MustRegister(m.retrains)
	m.registry.MustRegister(m.modelAccuracy)
	m.registry.MustRegister(m.modelVersion)
}

// RecordClassification records one classification outcome.
func (m *Manager) RecordClassification(domain string, confidence float64) {
	if !m.enabled {
		return
	}
	m.classifications.WithLabelValues(domain).Inc()
	m.classificationConfidence.Observe(confidence)
}

// RecordRetrain records a retrain attempt result ("accepted" or "rejected").
func (m *Manager) RecordRetrain(result string) {
	if !m.enabled {
		return
	}
	m.retrains.WithLabelValues(result).Inc()
}

// SetModelSnapshot records the active snapshot's version and accuracy.
func (m *Manager) SetModelSnapshot(version int64, accuracy float64) {
	if !m.enabled {
		return
	}
	m.modelVersion.Set(float64(version))
	m.modelAccuracy.Set(accuracy)
}
