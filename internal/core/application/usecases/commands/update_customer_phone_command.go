package commands

import (
	"errors"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/guard"
)

var ErrUpdateCustomerPhoneCommandIsNotConstructed = errors.New(
	"UpdateCustomerPhoneCommand must be created via NewUpdateCustomerPhoneCommand constructor",
)

// UpdateCustomerPhoneCommand replaces a customer's phone. Unlike registration,
// the new phone may have at most PhoneNumberMaxDigits digits.
type UpdateCustomerPhoneCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	phone      kernel.PhoneNumber

	guard guard.ConstructorGuard
}

func NewUpdateCustomerPhoneCommand(customerID kernel.UUID, phone string) (UpdateCustomerPhoneCommand, error) {
	cmd := UpdateCustomerPhoneCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setPhone(phone),
	); err != nil {
		return UpdateCustomerPhoneCommand{}, err
	}

	return cmd, nil
}

func (c UpdateCustomerPhoneCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCustomerPhoneCommandIsNotConstructed)
}

func (c UpdateCustomerPhoneCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c UpdateCustomerPhoneCommand) Phone() kernel.PhoneNumber {
	return c.phone
}

func (c *UpdateCustomerPhoneCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *UpdateCustomerPhoneCommand) setPhone(raw string) error {
	if kernel.CountPhoneDigits(raw) > PhoneNumberMaxDigits {
		return ErrPhoneHasTooManyDigits
	}

	phone, err := kernel.NewPhoneNumber(raw)
	if err != nil {
		return err
	}
	c.phone = phone
	return nil
}
