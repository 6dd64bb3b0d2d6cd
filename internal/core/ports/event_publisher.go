package ports

import (
	"context"

	"refill/internal/core/domain/model/kernel"
)

// EventPublisher receives the domain events of a command after it committed.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent)
}
