package commands

import (
	"context"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/history"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/core/ports"
)

type BatchReadyResult struct {
	OrderID     kernel.UUID
	OrderStatus order.Status
	MarkedCount int
	Total       int
	// IsOrderComplete is true once the order is ReadyForPickup.
	IsOrderComplete bool
}

// MarkCylindersReadyBatchCommandHandler fills every non-Ready member of an
// order. Members whose transition is rejected, such as Problem or Delivered
// cylinders, are skipped rather than failing the batch.
type MarkCylindersReadyBatchCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

func NewMarkCylindersReadyBatchCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
) MarkCylindersReadyBatchCommandHandler {
	return MarkCylindersReadyBatchCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle fails with ErrNoCylindersToMarkReady when every member is already
// Ready. The rollup runs once, after all transitions.
func (h MarkCylindersReadyBatchCommandHandler) Handle(
	ctx context.Context,
	cmd MarkCylindersReadyBatchCommand,
) (BatchReadyResult, error) {
	if err := cmd.Validate(); err != nil {
		return BatchReadyResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return BatchReadyResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cylinderRepo := uow.CylinderRepository()
	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return BatchReadyResult{}, err
	}

	members, err := cylinderRepo.GetMany(ctx, o.CylinderIDs())
	if err != nil {
		return BatchReadyResult{}, err
	}

	orderID := o.ID()
	pending := 0
	marked := make([]*cylinder.Cylinder, 0, len(members))
	entries := make([]*history.Entry, 0, len(members))
	events := make([]kernel.DomainEvent, 0, len(members)+1)

	for _, c := range members {
		if c.State() == cylinder.Ready {
			continue
		}
		pending++

		event, err := c.MarkReady()
		if err != nil {
			continue
		}

		entry, err := history.NewEntry(c.ID(), history.MarkedReady, "Cylinder filled (batch)", &orderID)
		if err != nil {
			return BatchReadyResult{}, err
		}

		marked = append(marked, c)
		entries = append(entries, entry)
		events = append(events, event)
	}

	if pending == 0 {
		return BatchReadyResult{}, ErrNoCylindersToMarkReady
	}

	if became := o.CheckAndUpdateStatus(members); became != nil {
		events = append(events, *became)
	}

	if err := ctx.Err(); err != nil {
		return BatchReadyResult{}, err
	}

	for _, c := range marked {
		if err := cylinderRepo.Update(ctx, c); err != nil {
			return BatchReadyResult{}, err
		}
	}

	if err := orderRepo.Update(ctx, o); err != nil {
		return BatchReadyResult{}, err
	}

	if err := uow.HistoryRepository().Append(ctx, entries...); err != nil {
		return BatchReadyResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return BatchReadyResult{}, err
	}

	h.publisher.Publish(ctx, events...)

	return BatchReadyResult{
		OrderID:         o.ID(),
		OrderStatus:     o.Status(),
		MarkedCount:     len(marked),
		Total:           len(o.Cylinders()),
		IsOrderComplete: o.Status() == order.ReadyForPickup,
	}, nil
}
