package ports

import (
	"context"

	"refill/internal/core/domain/model/history"
	"refill/internal/core/domain/model/kernel"
)

// HistoryRepository is the append-only cylinder history ledger.
type HistoryRepository interface {
	Append(ctx context.Context, entries ...*history.Entry) error

	// ListByCylinder returns the cylinder's entries, newest first.
	ListByCylinder(ctx context.Context, cylinderID kernel.UUID) ([]*history.Entry, error)

	// DeleteByCylinder removes the ledger of a cylinder being deleted.
	DeleteByCylinder(ctx context.Context, cylinderID kernel.UUID) error
}
