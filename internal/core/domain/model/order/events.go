package order

import (
	"time"

	"refill/internal/core/domain/model/kernel"
)

// CreatedEvent is returned by NewOrder.
type CreatedEvent struct {
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	OccurredAt time.Time
}

func (CreatedEvent) EventType() string { return "OrderCreated" }

// BecameReadyForPickupEvent is returned by CheckAndUpdateStatus when the
// rollup promotes the order. It is emitted at most once per order.
type BecameReadyForPickupEvent struct {
	OrderID       kernel.UUID
	CustomerID    kernel.UUID
	CylinderCount int
	OccurredAt    time.Time
}

func (BecameReadyForPickupEvent) EventType() string { return "OrderBecameReadyForPickup" }

// CompletedEvent is returned by Complete.
type CompletedEvent struct {
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	OccurredAt time.Time
}

func (CompletedEvent) EventType() string { return "OrderCompleted" }
