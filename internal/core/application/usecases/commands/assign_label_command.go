package commands

import (
	"errors"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/guard"
)

var ErrAssignLabelCommandIsNotConstructed = errors.New(
	"AssignLabelCommand must be created via NewAssignLabelCommand constructor",
)

// AssignLabelCommand sets or replaces a cylinder's QR label.
type AssignLabelCommand struct { //nolint:recvcheck //using for validation
	cylinderID kernel.UUID
	labelToken kernel.LabelToken

	guard guard.ConstructorGuard
}

func NewAssignLabelCommand(cylinderID kernel.UUID, qrToken string) (AssignLabelCommand, error) {
	cmd := AssignLabelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCylinderID(cylinderID),
		cmd.setLabelToken(qrToken),
	); err != nil {
		return AssignLabelCommand{}, err
	}

	return cmd, nil
}

func (c AssignLabelCommand) Validate() error {
	return c.guard.Validate(ErrAssignLabelCommandIsNotConstructed)
}

func (c AssignLabelCommand) CylinderID() kernel.UUID {
	return c.cylinderID
}

func (c AssignLabelCommand) LabelToken() kernel.LabelToken {
	return c.labelToken
}

func (c *AssignLabelCommand) setCylinderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.cylinderID = id
	return nil
}

func (c *AssignLabelCommand) setLabelToken(raw string) error {
	token, err := kernel.NewLabelToken(raw)
	if err != nil {
		return err
	}
	c.labelToken = token
	return nil
}
