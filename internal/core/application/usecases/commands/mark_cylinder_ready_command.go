package commands

import (
	"errors"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/guard"
)

var ErrMarkCylinderReadyCommandIsNotConstructed = errors.New(
	"MarkCylinderReadyCommand must be created via NewMarkCylinderReadyCommand constructor",
)

// MarkCylinderReadyCommand records that one cylinder was filled.
type MarkCylinderReadyCommand struct { //nolint:recvcheck //using for validation
	cylinderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkCylinderReadyCommand(cylinderID kernel.UUID) (MarkCylinderReadyCommand, error) {
	if err := cylinderID.Validate(); err != nil {
		return MarkCylinderReadyCommand{}, err
	}

	return MarkCylinderReadyCommand{
		cylinderID: cylinderID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c MarkCylinderReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkCylinderReadyCommandIsNotConstructed)
}

func (c MarkCylinderReadyCommand) CylinderID() kernel.UUID {
	return c.cylinderID
}
