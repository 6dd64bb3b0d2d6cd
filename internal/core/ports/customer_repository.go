package ports

import (
	"context"

	"refill/internal/core/domain/model/customer"
	"refill/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customers.
type CustomerRepository interface {
	// Add persists a new customer. A phone already in use fails with
	// errs.ErrObjectAlreadyExists.
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Update persists a customer conditionally on its loaded version.
	Update(ctx context.Context, aggregate *customer.Customer) error

	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)

	// FindByPhone fails with errs.ErrObjectNotFound when nobody owns phone.
	FindByPhone(ctx context.Context, phone kernel.PhoneNumber) (*customer.Customer, error)

	Delete(ctx context.Context, id kernel.UUID) error
}
