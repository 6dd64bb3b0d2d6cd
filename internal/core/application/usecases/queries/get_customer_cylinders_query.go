package queries

import (
	"errors"
	"time"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/pkg/guard"
)

var (
	ErrGetCustomerCylindersQueryIsNotConstructed = errors.New(
		"GetCustomerCylindersQuery must be created via NewGetCustomerCylindersQuery constructor",
	)
)

// GetCustomerCylindersQuery lists every cylinder a customer ever brought in,
// across all of their orders, each with its ledger.
type GetCustomerCylindersQuery struct {
	customerID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewGetCustomerCylindersQuery(customerID kernel.UUID) (GetCustomerCylindersQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCustomerCylindersQuery{}, err
	}

	return GetCustomerCylindersQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetCustomerCylindersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerCylindersQueryIsNotConstructed)
}

func (q GetCustomerCylindersQuery) CustomerID() kernel.UUID {
	return q.customerID
}

type GetCustomerCylindersQueryResponse struct {
	CustomerID kernel.UUID
	Name       string
	Phone      string
	// Cylinders holds one item per order membership, newest order first.
	Cylinders []CustomerCylinder
}

type CustomerCylinder struct {
	OrderID          kernel.UUID
	OrderStatus      order.Status
	CylinderID       kernel.UUID
	SequentialNumber int64
	LabelToken       string
	State            cylinder.State
	CreatedAt        time.Time
	// History is newest first.
	History []HistoryItem
}
