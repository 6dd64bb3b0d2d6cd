package customer

import (
	"time"

	"refill/internal/core/domain/model/kernel"
)

// CreatedEvent is returned by NewCustomer.
type CreatedEvent struct {
	CustomerID kernel.UUID
	Name       string
	Phone      string
	OccurredAt time.Time
}

func (CreatedEvent) EventType() string { return "CustomerCreated" }
