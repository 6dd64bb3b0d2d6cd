package ports

import (
	"context"

	"refill/internal/core/domain/model/kernel"
)

// PrintRequest is what a dispatcher hands to the print worker.
type PrintRequest struct {
	PrintJobID    kernel.UUID
	Quantity      int
	TemplateID    string
	CustomerName  string
	CustomerPhone string
}

// PrintJobDispatcher delivers a dispatched job to whatever prints it.
// Dispatch is fire-and-forget: implementations report problems through their
// own logs and metrics, and the job stays Dispatched until acknowledged.
type PrintJobDispatcher interface {
	Dispatch(ctx context.Context, request PrintRequest)
}
