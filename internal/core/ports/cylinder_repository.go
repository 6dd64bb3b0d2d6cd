package ports

import (
	"context"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/kernel"
)

// CylinderRepository defines the persistence contract for cylinders.
type CylinderRepository interface {
	// NextSequentialNumber atomically reserves the next display number. The
	// reservation belongs to the current transaction.
	NextSequentialNumber(ctx context.Context) (int64, error)

	// Add persists a new cylinder. A label token already held by another
	// cylinder fails with errs.ErrObjectAlreadyExists.
	Add(ctx context.Context, aggregate *cylinder.Cylinder) error

	// Update persists a cylinder conditionally on its loaded version.
	Update(ctx context.Context, aggregate *cylinder.Cylinder) error

	// Get retrieves a cylinder by id or fails with errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*cylinder.Cylinder, error)

	// GetMany retrieves the cylinders with the given ids. Unknown ids are skipped.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*cylinder.Cylinder, error)

	// FindBySequentialNumber fails with errs.ErrObjectNotFound when no cylinder has n.
	FindBySequentialNumber(ctx context.Context, n int64) (*cylinder.Cylinder, error)

	// FindByLabelToken fails with errs.ErrObjectNotFound when no cylinder holds token.
	FindByLabelToken(ctx context.Context, token kernel.LabelToken) (*cylinder.Cylinder, error)

	// Delete removes the cylinder record only. History and memberships are
	// removed through their own repositories.
	Delete(ctx context.Context, id kernel.UUID) error
}
