package commands

import (
	"errors"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/guard"
)

var ErrDeliverCylinderCommandIsNotConstructed = errors.New(
	"DeliverCylinderCommand must be created via NewDeliverCylinderCommand constructor",
)

// DeliverCylinderCommand hands one filled cylinder back to its customer.
type DeliverCylinderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	cylinderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeliverCylinderCommand(orderID, cylinderID kernel.UUID) (DeliverCylinderCommand, error) {
	if err := errors.Join(orderID.Validate(), cylinderID.Validate()); err != nil {
		return DeliverCylinderCommand{}, err
	}

	return DeliverCylinderCommand{
		orderID:    orderID,
		cylinderID: cylinderID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c DeliverCylinderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverCylinderCommandIsNotConstructed)
}

func (c DeliverCylinderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c DeliverCylinderCommand) CylinderID() kernel.UUID {
	return c.cylinderID
}
