package cylinder

import (
	"time"

	"refill/internal/core/domain/model/kernel"
)

// ReceivedEvent is returned when a cylinder is registered in the shop.
type ReceivedEvent struct {
	CylinderID       kernel.UUID
	SequentialNumber int64
	OccurredAt       time.Time
}

func (ReceivedEvent) EventType() string { return "CylinderReceived" }

// MarkedReadyEvent is returned by MarkReady.
type MarkedReadyEvent struct {
	CylinderID kernel.UUID
	OccurredAt time.Time
}

func (MarkedReadyEvent) EventType() string { return "CylinderMarkedReady" }

// DeliveredEvent is returned by MarkDelivered.
type DeliveredEvent struct {
	CylinderID kernel.UUID
	OccurredAt time.Time
}

func (DeliveredEvent) EventType() string { return "CylinderDelivered" }

// LabelAssignedEvent is returned when AssignLabel changes the token.
// PreviousLabelToken is empty for a first assignment.
type LabelAssignedEvent struct {
	CylinderID         kernel.UUID
	LabelToken         string
	PreviousLabelToken string
	OccurredAt         time.Time
}

func (LabelAssignedEvent) EventType() string { return "LabelAssigned" }
