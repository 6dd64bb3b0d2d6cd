package memory

import (
	"context"

	"refill/internal/core/domain/model/customer"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"
)

// CustomerRepository implements ports.CustomerRepository over a unit of work.
type CustomerRepository struct {
	uow *UnitOfWork
}

func (r *CustomerRepository) Add(_ context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s, err := r.uow.current()
	if err != nil {
		return err
	}

	if _, ok := s.customers[aggregate.ID()]; ok {
		return errs.NewObjectAlreadyExistsError("customer", aggregate.ID().String())
	}

	if err := checkPhoneIsFree(s, aggregate); err != nil {
		return err
	}

	s.customers[aggregate.ID()] = customerFromDomain(aggregate, aggregate.Version())
	return nil
}

func (r *CustomerRepository) Update(_ context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s, err := r.uow.current()
	if err != nil {
		return err
	}

	stored, ok := s.customers[aggregate.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("customer", aggregate.ID().String())
	}
	if stored.version != aggregate.Version() {
		return errs.NewVersionIsInvalidError("customer")
	}

	if err := checkPhoneIsFree(s, aggregate); err != nil {
		return err
	}

	s.customers[aggregate.ID()] = customerFromDomain(aggregate, stored.version+1)
	return nil
}

func (r *CustomerRepository) Get(_ context.Context, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}

	rec, ok := s.customers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("customer", id.String())
	}

	return rec.toDomain()
}

func (r *CustomerRepository) FindByPhone(_ context.Context, phone kernel.PhoneNumber) (*customer.Customer, error) {
	if err := phone.Validate(); err != nil {
		return nil, err
	}

	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}

	for _, rec := range s.customers {
		if rec.phone == phone.String() {
			return rec.toDomain()
		}
	}

	return nil, errs.NewObjectNotFoundError("customer", phone.String())
}

func (r *CustomerRepository) Delete(_ context.Context, id kernel.UUID) error {
	s, err := r.uow.current()
	if err != nil {
		return err
	}

	if _, ok := s.customers[id]; !ok {
		return errs.NewObjectNotFoundError("customer", id.String())
	}

	delete(s.customers, id)
	return nil
}

func checkPhoneIsFree(s *state, c *customer.Customer) error {
	for id, rec := range s.customers {
		if id != c.ID() && rec.phone == c.Phone().String() {
			return errs.NewObjectAlreadyExistsError("phone", rec.phone)
		}
	}
	return nil
}

func customerFromDomain(c *customer.Customer, version int) customerRecord {
	return customerRecord{
		id:        c.ID(),
		name:      c.Name(),
		phone:     c.Phone().String(),
		createdAt: c.CreatedAt(),
		version:   version,
	}
}

func (r customerRecord) toDomain() (*customer.Customer, error) {
	phone, err := kernel.NewPhoneNumber(r.phone)
	if err != nil {
		return nil, err
	}
	return customer.RestoreCustomer(r.id, r.name, phone, r.createdAt, r.version)
}
