package commands

import (
	"context"
	"fmt"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/history"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/ports"
)

// ReceiveCylinderCommandHandler creates a cylinder inside an Open order.
type ReceiveCylinderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

func NewReceiveCylinderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
) ReceiveCylinderCommandHandler {
	return ReceiveCylinderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle allocates the next sequential number, creates the cylinder in
// Received, applies the optional label (unique across cylinders) and attaches
// the cylinder to the order. The history ledger gets a Received entry, plus a
// LabelAssigned entry when labelled.
func (h ReceiveCylinderCommandHandler) Handle(
	ctx context.Context,
	cmd ReceiveCylinderCommand,
) (CylinderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CylinderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CylinderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	cylinderRepo := uow.CylinderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return CylinderResult{}, err
	}

	if err := o.Status().ValidateModify(); err != nil {
		return CylinderResult{}, err
	}

	label, labelled := cmd.LabelToken()
	if labelled {
		if err := ensureLabelIsFree(ctx, cylinderRepo, label, kernel.UUID{}); err != nil {
			return CylinderResult{}, err
		}
	}

	if err := ctx.Err(); err != nil {
		return CylinderResult{}, err
	}

	seq, err := cylinderRepo.NextSequentialNumber(ctx)
	if err != nil {
		return CylinderResult{}, err
	}

	c, received, err := cylinder.NewCylinder(kernel.NewUUID(), seq)
	if err != nil {
		return CylinderResult{}, err
	}

	orderID := o.ID()
	entries := make([]*history.Entry, 0, 2)
	events := []kernel.DomainEvent{received}

	entry, err := history.NewEntry(c.ID(), history.Received, fmt.Sprintf("Cylinder #%d received", seq), &orderID)
	if err != nil {
		return CylinderResult{}, err
	}
	entries = append(entries, entry)

	if labelled {
		assigned, err := c.AssignLabel(label)
		if err != nil {
			return CylinderResult{}, err
		}
		if assigned != nil {
			events = append(events, *assigned)

			entry, err := history.NewEntry(c.ID(), history.LabelAssigned, labelDetails(*assigned), &orderID)
			if err != nil {
				return CylinderResult{}, err
			}
			entries = append(entries, entry)
		}
	}

	if err := o.AddCylinder(c); err != nil {
		return CylinderResult{}, err
	}

	if err := cylinderRepo.Add(ctx, c); err != nil {
		return CylinderResult{}, err
	}

	if err := orderRepo.Update(ctx, o); err != nil {
		return CylinderResult{}, err
	}

	if err := uow.HistoryRepository().Append(ctx, entries...); err != nil {
		return CylinderResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return CylinderResult{}, err
	}

	h.publisher.Publish(ctx, events...)

	return newCylinderResult(c), nil
}
