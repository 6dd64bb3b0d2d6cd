package commands

import (
	"context"
)

// UpdateCustomerNameCommandHandler renames customers.
type UpdateCustomerNameCommandHandler struct {
	uowFactory CustomerUoWFactory
}

func NewUpdateCustomerNameCommandHandler(uowFactory CustomerUoWFactory) UpdateCustomerNameCommandHandler {
	return UpdateCustomerNameCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateCustomerNameCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateCustomerNameCommand,
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

	if err := c.Rename(cmd.Name()); err != nil {
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
