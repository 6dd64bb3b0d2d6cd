package commands

import (
	"errors"
	"strings"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"
	"refill/internal/pkg/guard"
)

var ErrScanCylinderToOrderCommandIsNotConstructed = errors.New(
	"ScanCylinderToOrderCommand must be created via NewScanCylinderToOrderCommand constructor",
)

// ScanCylinderToOrderCommand attaches an existing cylinder, identified by a
// scanned QR token or a typed sequential number, to an Open order.
type ScanCylinderToOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	token   string

	guard guard.ConstructorGuard
}

func NewScanCylinderToOrderCommand(orderID kernel.UUID, token string) (ScanCylinderToOrderCommand, error) {
	cmd := ScanCylinderToOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setToken(token),
	); err != nil {
		return ScanCylinderToOrderCommand{}, err
	}

	return cmd, nil
}

func (c ScanCylinderToOrderCommand) Validate() error {
	return c.guard.Validate(ErrScanCylinderToOrderCommandIsNotConstructed)
}

func (c ScanCylinderToOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Token returns the raw scanned text.
func (c ScanCylinderToOrderCommand) Token() string {
	return c.token
}

func (c *ScanCylinderToOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ScanCylinderToOrderCommand) setToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errs.NewValueIsRequiredError("qr token")
	}
	c.token = token
	return nil
}
