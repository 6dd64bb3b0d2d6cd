package commands

import (
	"errors"
	"strings"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"
	"refill/internal/pkg/guard"
)

var ErrCreateCustomerCommandIsNotConstructed = errors.New(
	"CreateCustomerCommand must be created via NewCreateCustomerCommand constructor",
)

// CreateCustomerCommand registers a customer by name and phone.
//
// Example:
//
//	cmd, err := NewCreateCustomerCommand("Maria Silva", "926 060 863")
//	if err != nil {
//	    return fmt.Errorf("invalid customer data: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type CreateCustomerCommand struct { //nolint:recvcheck //using for validation
	name  string
	phone kernel.PhoneNumber

	guard guard.ConstructorGuard
}

func NewCreateCustomerCommand(name, phone string) (CreateCustomerCommand, error) {
	cmd := CreateCustomerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setName(name),
		cmd.setPhone(phone),
	); err != nil {
		return CreateCustomerCommand{}, err
	}

	return cmd, nil
}

func (c CreateCustomerCommand) Validate() error {
	return c.guard.Validate(ErrCreateCustomerCommandIsNotConstructed)
}

func (c CreateCustomerCommand) Name() string {
	return c.name
}

// Phone returns the normalized phone number.
func (c CreateCustomerCommand) Phone() kernel.PhoneNumber {
	return c.phone
}

func (c *CreateCustomerCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *CreateCustomerCommand) setPhone(raw string) error {
	phone, err := kernel.NewPhoneNumber(raw)
	if err != nil {
		return err
	}
	c.phone = phone
	return nil
}
