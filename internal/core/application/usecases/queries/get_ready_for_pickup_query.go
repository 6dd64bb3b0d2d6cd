package queries

import (
	"errors"
	"strings"
	"time"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/pkg/guard"
)

var (
	ErrGetReadyForPickupQueryIsNotConstructed = errors.New(
		"GetReadyForPickupQuery must be created via NewGetReadyForPickupQuery constructor",
	)
)

// GetReadyForPickupQuery lists ReadyForPickup orders, oldest first. A
// non-blank search keeps orders whose customer name contains it
// (case-insensitive) or whose phone contains its digits.
type GetReadyForPickupQuery struct {
	search string
	guard  guard.ConstructorGuard
}

func NewGetReadyForPickupQuery(search string) GetReadyForPickupQuery {
	return GetReadyForPickupQuery{
		search: strings.TrimSpace(search),
		guard:  guard.NewConstructorGuard(),
	}
}

func (q GetReadyForPickupQuery) Validate() error {
	return q.guard.Validate(ErrGetReadyForPickupQueryIsNotConstructed)
}

func (q GetReadyForPickupQuery) Search() string {
	return q.search
}

type GetReadyForPickupQueryResponse struct {
	OrderID       kernel.UUID
	CustomerID    kernel.UUID
	CustomerName  string
	CustomerPhone string
	Status        order.Status
	CreatedAt     time.Time
	NotifiedAt    *time.Time
	// NeedsNotification is true until the customer was told the order is ready.
	NeedsNotification  bool
	TotalCylinders     int
	DeliveredCylinders int
	Cylinders          []PickupCylinder
}

// PickupCylinder carries the authoritative state of a cylinder of the order.
type PickupCylinder struct {
	CylinderID       kernel.UUID
	SequentialNumber int64
	LabelToken       string
	State            cylinder.State
	IsDelivered      bool
}
