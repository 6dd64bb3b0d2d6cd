// Package eventlog publishes domain events to the structured log and counts
// them per event type.
package eventlog

import (
	"context"
	"log/slog"

	"refill/internal/core/domain/model/kernel"

	"github.com/prometheus/client_golang/prometheus"
)

// Publisher implements ports.EventPublisher. It never fails: events are
// published after commit, so there is nothing left to roll back.
type Publisher struct {
	logger *slog.Logger
	events *prometheus.CounterVec
}

// NewPublisher registers the refill_domain_events_total counter on reg.
func NewPublisher(logger *slog.Logger, reg prometheus.Registerer) (*Publisher, error) {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "refill",
		Name:      "domain_events_total",
		Help:      "Domain events published after a successful commit.",
	}, []string{"event_type"})

	if err := reg.Register(events); err != nil {
		return nil, err
	}

	return &Publisher{
		logger: logger.With("component", "event_log"),
		events: events,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, events ...kernel.DomainEvent) {
	for _, event := range events {
		if event == nil {
			continue
		}

		p.events.WithLabelValues(event.EventType()).Inc()
		p.logger.InfoContext(ctx, "Domain event published",
			"event_type", event.EventType(),
			"event", event,
		)
	}
}
