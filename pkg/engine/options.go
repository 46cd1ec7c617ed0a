package engine

import (
	"github.com/lexroute/lexroute/pkg/eventbus"
	"github.com/lexroute/lexroute/pkg/logger"
	"github.com/lexroute/lexroute/pkg/metrics"
)

// Option is a functional option for configuring the Engine.
type Option func(*Engine)

// WithMetrics sets the metrics manager for the engine.
func WithMetrics(m *metrics.Manager) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithPublisher sets the event publisher for the engine.
func WithPublisher(p *eventbus.Publisher) Option {
	return func(e *Engine) {
		if p != nil {
			e.publisher = p
		}
	}
}

// WithLogger sets the logger for the engine.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.logger = log.With("component", "engine")
		}
	}
}
