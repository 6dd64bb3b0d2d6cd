package commands

import (
	"context"
	"time"

	"refill/internal/core/domain/model/kernel"
)

type NotifiedResult struct {
	OrderID    kernel.UUID
	NotifiedAt time.Time
}

// MarkOrderNotifiedCommandHandler stamps the notification time of
// ReadyForPickup orders. Repeated calls restamp it.
type MarkOrderNotifiedCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewMarkOrderNotifiedCommandHandler(uowFactory OrderUoWFactory) MarkOrderNotifiedCommandHandler {
	return MarkOrderNotifiedCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h MarkOrderNotifiedCommandHandler) Handle(
	ctx context.Context,
	cmd MarkOrderNotifiedCommand,
) (NotifiedResult, error) {
	if err := cmd.Validate(); err != nil {
		return NotifiedResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return NotifiedResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return NotifiedResult{}, err
	}

	if err := o.MarkAsNotified(); err != nil {
		return NotifiedResult{}, err
	}

	if err := ctx.Err(); err != nil {
		return NotifiedResult{}, err
	}

	if err := orderRepo.Update(ctx, o); err != nil {
		return NotifiedResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return NotifiedResult{}, err
	}

	return NotifiedResult{
		OrderID:    o.ID(),
		NotifiedAt: *o.NotifiedAt(),
	}, nil
}
