package commands

import (
	"errors"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/guard"
)

var ErrMarkCylindersReadyBatchCommandIsNotConstructed = errors.New(
	"MarkCylindersReadyBatchCommand must be created via NewMarkCylindersReadyBatchCommand constructor",
)

// MarkCylindersReadyBatchCommand fills every cylinder of an order at once.
type MarkCylindersReadyBatchCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkCylindersReadyBatchCommand(orderID kernel.UUID) (MarkCylindersReadyBatchCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkCylindersReadyBatchCommand{}, err
	}

	return MarkCylindersReadyBatchCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c MarkCylindersReadyBatchCommand) Validate() error {
	return c.guard.Validate(ErrMarkCylindersReadyBatchCommandIsNotConstructed)
}

func (c MarkCylindersReadyBatchCommand) OrderID() kernel.UUID {
	return c.orderID
}
