package commands

import (
	"context"
	"errors"
	"time"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/core/ports"
	"refill/internal/pkg/errs"
)

// OrderResult describes an order after CreateOrder.
type OrderResult struct {
	OrderID       kernel.UUID
	CustomerID    kernel.UUID
	Status        order.Status
	CreatedAt     time.Time
	CompletedAt   *time.Time
	CylinderCount int

	// Created is false when an existing Open order was returned.
	Created bool
}

// CreateOrderCommandHandler opens orders idempotently: a customer with an Open
// order gets that order back instead of a second one.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns the customer's most recent Open order when there is one.
// Otherwise it creates an order and claims the customer row, so two racing
// requests cannot both create one.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (OrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return OrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return OrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customerRepo := uow.CustomerRepository()
	orderRepo := uow.OrderRepository()

	c, err := customerRepo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return OrderResult{}, err
	}

	existing, err := orderRepo.FindOpenByCustomer(ctx, c.ID())
	if err == nil {
		return newOrderResult(existing, false), nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return OrderResult{}, err
	}

	o, created, err := order.NewOrder(kernel.NewUUID(), c.ID())
	if err != nil {
		return OrderResult{}, err
	}

	if err := ctx.Err(); err != nil {
		return OrderResult{}, err
	}

	if err := customerRepo.Update(ctx, c); err != nil {
		return OrderResult{}, err
	}

	if err := orderRepo.Add(ctx, o); err != nil {
		return OrderResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return OrderResult{}, err
	}

	h.publisher.Publish(ctx, created)

	return newOrderResult(o, true), nil
}

func newOrderResult(o *order.Order, created bool) OrderResult {
	return OrderResult{
		OrderID:       o.ID(),
		CustomerID:    o.CustomerID(),
		Status:        o.Status(),
		CreatedAt:     o.CreatedAt(),
		CompletedAt:   o.CompletedAt(),
		CylinderCount: len(o.Cylinders()),
		Created:       created,
	}
}
