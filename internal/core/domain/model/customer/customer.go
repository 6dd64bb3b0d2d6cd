package customer

import (
	"errors"
	"strings"
	"time"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"
)

var (
	// ErrCustomerIsNotConstructed is returned when a Customer was not created through
	// NewCustomer or RestoreCustomer.
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")
)

// Customer owns refill orders. Phone uniqueness across customers is checked by
// the commands that set it; storage backs it with a unique constraint.
type Customer struct {
	id        kernel.UUID
	name      string
	phone     kernel.PhoneNumber
	createdAt time.Time

	version int

	isConstructed bool
}

// NewCustomer registers a customer. The name is trimmed and must not be blank.
func NewCustomer(id kernel.UUID, name string, phone kernel.PhoneNumber) (*Customer, CreatedEvent, error) {
	c := &Customer{
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setPhone(phone),
	); err != nil {
		return nil, CreatedEvent{}, err
	}

	return c, CreatedEvent{
		CustomerID: c.id,
		Name:       c.name,
		Phone:      c.phone.String(),
		OccurredAt: c.createdAt,
	}, nil
}

// RestoreCustomer rebuilds a customer from storage.
func RestoreCustomer(
	id kernel.UUID,
	name string,
	phone kernel.PhoneNumber,
	createdAt time.Time,
	version int,
) (*Customer, error) {
	c := &Customer{
		createdAt:     createdAt,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

func (c *Customer) ID() kernel.UUID {
	return c.id
}

func (c *Customer) Name() string {
	return c.name
}

func (c *Customer) Phone() kernel.PhoneNumber {
	return c.phone
}

func (c *Customer) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Customer) Version() int {
	return c.version
}

// UpdatePhone replaces the phone number.
func (c *Customer) UpdatePhone(phone kernel.PhoneNumber) error {
	return c.setPhone(phone)
}

// Rename replaces the name, trimmed. Blank names are rejected.
func (c *Customer) Rename(name string) error {
	return c.setName(name)
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errs.NewValueIsRequiredErrorWithCause("name", errors.New("customer name cannot be empty"))
	}
	c.name = trimmed
	return nil
}

func (c *Customer) setPhone(phone kernel.PhoneNumber) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	c.phone = phone
	return nil
}
