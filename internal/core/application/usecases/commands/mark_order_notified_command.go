package commands

import (
	"errors"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/guard"
)

var ErrMarkOrderNotifiedCommandIsNotConstructed = errors.New(
	"MarkOrderNotifiedCommand must be created via NewMarkOrderNotifiedCommand constructor",
)

// MarkOrderNotifiedCommand records that the customer was told the order is
// ready for pickup.
type MarkOrderNotifiedCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkOrderNotifiedCommand(orderID kernel.UUID) (MarkOrderNotifiedCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkOrderNotifiedCommand{}, err
	}

	return MarkOrderNotifiedCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c MarkOrderNotifiedCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderNotifiedCommandIsNotConstructed)
}

func (c MarkOrderNotifiedCommand) OrderID() kernel.UUID {
	return c.orderID
}
