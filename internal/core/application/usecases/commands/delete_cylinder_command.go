package commands

import (
	"errors"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/guard"
)

var ErrDeleteCylinderCommandIsNotConstructed = errors.New(
	"DeleteCylinderCommand must be created via NewDeleteCylinderCommand constructor",
)

// DeleteCylinderCommand is the administrative removal of a cylinder with its
// history and order memberships.
type DeleteCylinderCommand struct { //nolint:recvcheck //using for validation
	cylinderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteCylinderCommand(cylinderID kernel.UUID) (DeleteCylinderCommand, error) {
	if err := cylinderID.Validate(); err != nil {
		return DeleteCylinderCommand{}, err
	}

	return DeleteCylinderCommand{
		cylinderID: cylinderID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteCylinderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteCylinderCommandIsNotConstructed)
}

func (c DeleteCylinderCommand) CylinderID() kernel.UUID {
	return c.cylinderID
}
