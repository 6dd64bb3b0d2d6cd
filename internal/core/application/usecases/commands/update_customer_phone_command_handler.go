package commands

import (
	"context"
)

// UpdateCustomerPhoneCommandHandler changes a customer's phone, keeping phones
// unique across customers.
type UpdateCustomerPhoneCommandHandler struct {
	uowFactory CustomerUoWFactory
}

func NewUpdateCustomerPhoneCommandHandler(uowFactory CustomerUoWFactory) UpdateCustomerPhoneCommandHandler {
	return UpdateCustomerPhoneCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateCustomerPhoneCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateCustomerPhoneCommand,
) (CustomerResult, error) {
	if err := cmd.Validate(); err != nil {
		return CustomerResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CustomerResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customerRepo := uow.CustomerRepository()

	c, err := customerRepo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return CustomerResult{}, err
	}

	if err := ensurePhoneIsFree(ctx, customerRepo, cmd.Phone(), c.ID()); err != nil {
		return CustomerResult{}, err
	}

	if err := c.UpdatePhone(cmd.Phone()); err != nil {
		return CustomerResult{}, err
	}

	if err := ctx.Err(); err != nil {
		return CustomerResult{}, err
	}

	if err := customerRepo.Update(ctx, c); err != nil {
		return CustomerResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return CustomerResult{}, err
	}

	return newCustomerResult(c), nil
}
