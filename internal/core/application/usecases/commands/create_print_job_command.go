package commands

import (
	"errors"
	"fmt"
	"strings"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"
	"refill/internal/pkg/guard"
)

var ErrCreatePrintJobCommandIsNotConstructed = errors.New(
	"CreatePrintJobCommand must be created via NewCreatePrintJobCommand constructor",
)

// CreatePrintJobCommand requests a batch of labels. Customer fields are only
// printed on the labels and never validated against stored customers.
type CreatePrintJobCommand struct { //nolint:recvcheck //using for validation
	storeID       kernel.UUID
	quantity      int
	templateID    string
	customerName  string
	customerPhone string

	guard guard.ConstructorGuard
}

func NewCreatePrintJobCommand(
	storeID kernel.UUID,
	quantity int,
	templateID, customerName, customerPhone string,
) (CreatePrintJobCommand, error) {
	var quantityErr error
	if quantity <= 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	if err := errors.Join(storeID.Validate(), quantityErr); err != nil {
		return CreatePrintJobCommand{}, err
	}

	return CreatePrintJobCommand{
		storeID:       storeID,
		quantity:      quantity,
		templateID:    strings.TrimSpace(templateID),
		customerName:  strings.TrimSpace(customerName),
		customerPhone: strings.TrimSpace(customerPhone),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CreatePrintJobCommand) Validate() error {
	return c.guard.Validate(ErrCreatePrintJobCommandIsNotConstructed)
}

func (c CreatePrintJobCommand) StoreID() kernel.UUID {
	return c.storeID
}

func (c CreatePrintJobCommand) Quantity() int {
	return c.quantity
}

func (c CreatePrintJobCommand) TemplateID() string {
	return c.templateID
}

func (c CreatePrintJobCommand) CustomerName() string {
	return c.customerName
}

func (c CreatePrintJobCommand) CustomerPhone() string {
	return c.customerPhone
}
