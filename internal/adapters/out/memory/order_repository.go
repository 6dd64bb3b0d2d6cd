package memory

import (
	"context"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository over a unit of work.
type OrderRepository struct {
	uow *UnitOfWork
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s, err := r.uow.current()
	if err != nil {
		return err
	}

	if _, ok := s.orders[aggregate.ID()]; ok {
		return errs.NewObjectAlreadyExistsError("order", aggregate.ID().String())
	}

	s.orders[aggregate.ID()] = orderFromDomain(aggregate, aggregate.Version())
	return nil
}

func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s, err := r.uow.current()
	if err != nil {
		return err
	}

	stored, ok := s.orders[aggregate.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	if stored.version != aggregate.Version() {
		return errs.NewVersionIsInvalidError("order")
	}

	s.orders[aggregate.ID()] = orderFromDomain(aggregate, stored.version+1)
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}

	rec, ok := s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	return rec.toDomain()
}

func (r *OrderRepository) FindOpenByCustomer(_ context.Context, customerID kernel.UUID) (*order.Order, error) {
	return r.latest(func(rec orderRecord) bool {
		return rec.customerID == customerID && rec.status == order.Open
	}, "open order of customer", customerID)
}

func (r *OrderRepository) FindOpenByCylinder(_ context.Context, cylinderID kernel.UUID) (*order.Order, error) {
	return r.latest(func(rec orderRecord) bool {
		return rec.status == order.Open && rec.contains(cylinderID)
	}, "open order of cylinder", cylinderID)
}

func (r *OrderRepository) FindLatestByCylinder(_ context.Context, cylinderID kernel.UUID) (*order.Order, error) {
	return r.latest(func(rec orderRecord) bool {
		return rec.contains(cylinderID)
	}, "order of cylinder", cylinderID)
}

func (r *OrderRepository) CountByCustomer(_ context.Context, customerID kernel.UUID) (int64, error) {
	s, err := r.uow.current()
	if err != nil {
		return 0, err
	}

	var n int64
	for _, rec := range s.orders {
		if rec.customerID == customerID {
			n++
		}
	}
	return n, nil
}

func (r *OrderRepository) RemoveCylinder(_ context.Context, cylinderID kernel.UUID) error {
	s, err := r.uow.current()
	if err != nil {
		return err
	}

	for id, rec := range s.orders {
		if !rec.contains(cylinderID) {
			continue
		}

		kept := make([]refRecord, 0, len(rec.cylinders))
		for _, ref := range rec.cylinders {
			if ref.cylinderID != cylinderID {
				kept = append(kept, ref)
			}
		}
		rec.cylinders = kept
		s.orders[id] = rec
	}

	return nil
}

// latest returns the most recently created order accepted by match.
func (r *OrderRepository) latest(match func(orderRecord) bool, param string, id kernel.UUID) (*order.Order, error) {
	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}

	var (
		found orderRecord
		ok    bool
	)
	for _, rec := range s.orders {
		if !match(rec) {
			continue
		}
		if !ok || rec.createdAt.After(found.createdAt) {
			found, ok = rec, true
		}
	}

	if !ok {
		return nil, errs.NewObjectNotFoundError(param, id.String())
	}
	return found.toDomain()
}

func (r orderRecord) contains(cylinderID kernel.UUID) bool {
	for _, ref := range r.cylinders {
		if ref.cylinderID == cylinderID {
			return true
		}
	}
	return false
}

func orderFromDomain(o *order.Order, version int) orderRecord {
	refs := make([]refRecord, 0, len(o.Cylinders()))
	for _, ref := range o.Cylinders() {
		refs = append(refs, refRecord{cylinderID: ref.CylinderID(), state: ref.State()})
	}

	return orderRecord{
		id:          o.ID(),
		customerID:  o.CustomerID(),
		status:      o.Status(),
		cylinders:   refs,
		createdAt:   o.CreatedAt(),
		completedAt: o.CompletedAt(),
		notifiedAt:  o.NotifiedAt(),
		version:     version,
	}
}

func (r orderRecord) toDomain() (*order.Order, error) {
	refs := make([]*order.CylinderRef, 0, len(r.cylinders))
	for _, rec := range r.cylinders {
		ref, err := order.RestoreCylinderRef(r.id, rec.cylinderID, rec.state)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	return order.RestoreOrder(
		r.id,
		r.customerID,
		r.status,
		refs,
		r.createdAt,
		r.completedAt,
		r.notifiedAt,
		r.version,
	)
}
