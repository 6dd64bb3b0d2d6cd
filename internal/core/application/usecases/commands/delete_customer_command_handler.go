package commands

import (
	"context"
)

// DeleteCustomerCommandHandler deletes customers without order history.
// Orders of any status count, so audit trails are never orphaned.
type DeleteCustomerCommandHandler struct {
	uowFactory CustomerUoWFactory
}

func NewDeleteCustomerCommandHandler(uowFactory CustomerUoWFactory) DeleteCustomerCommandHandler {
	return DeleteCustomerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle fails with ErrCustomerHasOrders when the customer owns any order.
func (h DeleteCustomerCommandHandler) Handle(ctx context.Context, cmd DeleteCustomerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customerRepo := uow.CustomerRepository()

	c, err := customerRepo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	orders, err := uow.OrderRepository().CountByCustomer(ctx, c.ID())
	if err != nil {
		return err
	}
	if orders > 0 {
		return ErrCustomerHasOrders
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := customerRepo.Delete(ctx, c.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
