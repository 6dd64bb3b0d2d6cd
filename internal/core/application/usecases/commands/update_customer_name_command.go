package commands

import (
	"errors"
	"strings"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"
	"refill/internal/pkg/guard"
)

var ErrUpdateCustomerNameCommandIsNotConstructed = errors.New(
	"UpdateCustomerNameCommand must be created via NewUpdateCustomerNameCommand constructor",
)

// UpdateCustomerNameCommand renames a customer. The name is trimmed.
type UpdateCustomerNameCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	name       string

	guard guard.ConstructorGuard
}

func NewUpdateCustomerNameCommand(customerID kernel.UUID, name string) (UpdateCustomerNameCommand, error) {
	cmd := UpdateCustomerNameCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setName(name),
	); err != nil {
		return UpdateCustomerNameCommand{}, err
	}

	return cmd, nil
}

func (c UpdateCustomerNameCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCustomerNameCommandIsNotConstructed)
}

func (c UpdateCustomerNameCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c UpdateCustomerNameCommand) Name() string {
	return c.name
}

func (c *UpdateCustomerNameCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *UpdateCustomerNameCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredErrorWithCause("name", errors.New("customer name cannot be empty"))
	}
	c.name = name
	return nil
}
