package ports

import (
	"context"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/printjob"
)

// PrintJobRepository defines the persistence contract for print jobs.
type PrintJobRepository interface {
	Add(ctx context.Context, aggregate *printjob.PrintJob) error

	// Update persists a job conditionally on its loaded version.
	Update(ctx context.Context, aggregate *printjob.PrintJob) error

	Get(ctx context.Context, id kernel.UUID) (*printjob.PrintJob, error)
}
