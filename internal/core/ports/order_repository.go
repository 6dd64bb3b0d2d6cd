package ports

import (
	"context"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for refill orders together
// with their cylinder memberships.
type OrderRepository interface {
	// Add persists a new order and its memberships.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order and replaces its memberships. The write is
	// conditional on the version the order was loaded with; a mismatch fails
	// with errs.ErrVersionIsInvalid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id or fails with errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindOpenByCustomer returns the customer's most recently created Open
	// order, or errs.ErrObjectNotFound.
	FindOpenByCustomer(ctx context.Context, customerID kernel.UUID) (*order.Order, error)

	// FindOpenByCylinder returns the Open order the cylinder belongs to, or
	// errs.ErrObjectNotFound.
	FindOpenByCylinder(ctx context.Context, cylinderID kernel.UUID) (*order.Order, error)

	// FindLatestByCylinder returns the most recently created order of any
	// status containing the cylinder, or errs.ErrObjectNotFound.
	FindLatestByCylinder(ctx context.Context, cylinderID kernel.UUID) (*order.Order, error)

	// CountByCustomer counts the customer's orders of any status.
	CountByCustomer(ctx context.Context, customerID kernel.UUID) (int64, error)

	// RemoveCylinder deletes every membership of the cylinder.
	RemoveCylinder(ctx context.Context, cylinderID kernel.UUID) error
}
