// Package orderrepo maps refill orders and their cylinder memberships to the
// orders and order_cylinders tables.
package orderrepo

import (
	"time"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is a row of the orders table.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID  uuid.UUID `gorm:"type:uuid;index"`
	Status      int       `gorm:"type:smallint"`
	CreatedAt   time.Time
	CompletedAt *time.Time
	NotifiedAt  *time.Time
	Version     int
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderCylinderDTO is a membership row. Position keeps insertion order and
// State mirrors the cylinder's state at the last write of the order.
type OrderCylinderDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CylinderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	State      int       `gorm:"type:smallint"`
	Position   int
}

func (OrderCylinderDTO) TableName() string {
	return "order_cylinders"
}

func fromDomain(o *order.Order) (OrderDTO, []OrderCylinderDTO) {
	dto := OrderDTO{
		ID:          o.ID().Bytes(),
		CustomerID:  o.CustomerID().Bytes(),
		Status:      int(o.Status()),
		CreatedAt:   o.CreatedAt(),
		CompletedAt: o.CompletedAt(),
		NotifiedAt:  o.NotifiedAt(),
		Version:     o.Version(),
	}

	refs := o.Cylinders()
	memberships := make([]OrderCylinderDTO, 0, len(refs))
	for i, ref := range refs {
		memberships = append(memberships, OrderCylinderDTO{
			OrderID:    dto.ID,
			CylinderID: ref.CylinderID().Bytes(),
			State:      int(ref.State()),
			Position:   i,
		})
	}

	return dto, memberships
}

// toDomain expects memberships sorted by position.
func toDomain(dto OrderDTO, memberships []OrderCylinderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	refs := make([]*order.CylinderRef, 0, len(memberships))
	for _, m := range memberships {
		cylinderID, err := kernel.UUIDFromBytes(m.CylinderID[:])
		if err != nil {
			return nil, err
		}

		ref, err := order.RestoreCylinderRef(id, cylinderID, cylinder.State(m.State))
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	return order.RestoreOrder(
		id,
		customerID,
		order.Status(dto.Status),
		refs,
		dto.CreatedAt,
		dto.CompletedAt,
		dto.NotifiedAt,
		dto.Version,
	)
}
