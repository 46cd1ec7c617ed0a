package eventbus

import (
	"context"
	"encoding/json"

	"github.com/lexroute/lexroute/pkg/logger"
)

// Publisher builds envelopes and publishes them to the bus. Publish
// failures are logged, never propagated: events are advisory and must
// not fail the operation that produced them.
type Publisher struct {
	bus    Bus
	logger logger.Logger
}

// NewPublisher wires a publisher. A nil bus disables publishing.
func NewPublisher(bus Bus, log logger.Logger) *Publisher {
	if log == nil {
		log = logger.Global()
	}
	return &Publisher{
		bus:    bus,
		logger: log.With("component", "eventbus"),
	}
}

// Publish emits one engine event.
func (p *Publisher) Publish(ctx context.Context, input BuildEnvelopeInput) {
	if p == nil || p.bus == nil {
		return
	}

	envelope, err := BuildEnvelope(input)
	if err != nil {
		p.logger.WarnContext(ctx, "event build failed",
			"event_type", input.EventType,
			"error", err)
		return
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		p.logger.WarnContext(ctx, "event marshal failed",
			"event_type", input.EventType,
			"error", err)
		return
	}

	if err := p.bus.Publish(ctx, Subject(envelope.EventType), data); err != nil {
		p.logger.WarnContext(ctx, "event publish failed",
			"event_type", input.EventType,
			"error", err)
	}
}
