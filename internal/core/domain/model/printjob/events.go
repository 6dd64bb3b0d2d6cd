package printjob

import (
	"time"

	"refill/internal/core/domain/model/kernel"
)

// CreatedEvent is returned by NewPrintJob.
type CreatedEvent struct {
	PrintJobID kernel.UUID
	StoreID    kernel.UUID
	Quantity   int
	TemplateID string
	OccurredAt time.Time
}

func (CreatedEvent) EventType() string { return "PrintJobCreated" }

// PrintedEvent is returned by MarkAsPrinted.
type PrintedEvent struct {
	PrintJobID kernel.UUID
	OccurredAt time.Time
}

func (PrintedEvent) EventType() string { return "PrintJobPrinted" }

// FailedEvent is returned by MarkAsFailed.
type FailedEvent struct {
	PrintJobID   kernel.UUID
	ErrorMessage string
	OccurredAt   time.Time
}

func (FailedEvent) EventType() string { return "PrintJobFailed" }
