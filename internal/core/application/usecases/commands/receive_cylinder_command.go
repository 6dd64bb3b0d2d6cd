package commands

import (
	"errors"
	"strings"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/guard"
)

var ErrReceiveCylinderCommandIsNotConstructed = errors.New(
	"ReceiveCylinderCommand must be created via NewReceiveCylinderCommand constructor",
)

// ReceiveCylinderCommand registers a cylinder the shop has never seen and
// attaches it to an Open order, optionally labelling it.
type ReceiveCylinderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	labelToken *kernel.LabelToken

	guard guard.ConstructorGuard
}

// NewReceiveCylinderCommand accepts a blank labelToken as "no label".
func NewReceiveCylinderCommand(orderID kernel.UUID, labelToken string) (ReceiveCylinderCommand, error) {
	cmd := ReceiveCylinderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLabelToken(labelToken),
	); err != nil {
		return ReceiveCylinderCommand{}, err
	}

	return cmd, nil
}

func (c ReceiveCylinderCommand) Validate() error {
	return c.guard.Validate(ErrReceiveCylinderCommandIsNotConstructed)
}

func (c ReceiveCylinderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LabelToken returns the requested label and whether one was given.
func (c ReceiveCylinderCommand) LabelToken() (kernel.LabelToken, bool) {
	if c.labelToken == nil {
		return kernel.LabelToken{}, false
	}
	return *c.labelToken, true
}

func (c *ReceiveCylinderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ReceiveCylinderCommand) setLabelToken(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	token, err := kernel.NewLabelToken(raw)
	if err != nil {
		return err
	}
	c.labelToken = &token
	return nil
}
