package commands

import (
	"context"
	"errors"
	"fmt"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/history"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/core/ports"
	"refill/internal/pkg/errs"
)

// DeliveryProgress reports the pickup progress of the order after one
// cylinder was delivered.
type DeliveryProgress struct {
	CylinderID         kernel.UUID
	State              cylinder.State
	OrderID            kernel.UUID
	OrderStatus        order.Status
	TotalCylinders     int
	DeliveredCylinders int
	// IsOrderComplete is true once the order is Completed.
	IsOrderComplete bool
}

// DeliverCylinderCommandHandler delivers cylinders of ReadyForPickup orders
// and completes the order with its last delivery.
type DeliverCylinderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

func NewDeliverCylinderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
) DeliverCylinderCommandHandler {
	return DeliverCylinderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle requires a ReadyForPickup order that holds the cylinder and a Ready
// cylinder. When every member is Delivered afterwards the order is completed;
// an InvalidState from that completion is ignored.
func (h DeliverCylinderCommandHandler) Handle(
	ctx context.Context,
	cmd DeliverCylinderCommand,
) (DeliveryProgress, error) {
	if err := cmd.Validate(); err != nil {
		return DeliveryProgress{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DeliveryProgress{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cylinderRepo := uow.CylinderRepository()
	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return DeliveryProgress{}, err
	}

	if o.Status() != order.ReadyForPickup {
		return DeliveryProgress{}, fmt.Errorf("%w. Current status: %s", ErrOrderNotReadyForPickup, o.Status())
	}

	if !o.ContainsCylinder(cmd.CylinderID()) {
		return DeliveryProgress{}, ErrCylinderNotInOrder
	}

	c, err := cylinderRepo.Get(ctx, cmd.CylinderID())
	if err != nil {
		return DeliveryProgress{}, err
	}

	delivered, err := c.MarkDelivered()
	if err != nil {
		return DeliveryProgress{}, err
	}
	events := []kernel.DomainEvent{delivered}

	members, err := cylinderRepo.GetMany(ctx, o.CylinderIDs())
	if err != nil {
		return DeliveryProgress{}, err
	}
	members = withCylinder(members, c)

	if became := o.CheckAndUpdateStatus(members); became != nil {
		events = append(events, *became)
	}

	deliveredCount := countInState(members, cylinder.Delivered)
	if deliveredCount == len(members) {
		completed, err := o.Complete(members)
		switch {
		case err == nil:
			events = append(events, completed)
		case !errors.Is(err, errs.ErrStateIsInvalid):
			return DeliveryProgress{}, err
		}
	}

	orderID := o.ID()
	entry, err := history.NewEntry(c.ID(), history.Delivered, "Cylinder delivered to customer", &orderID)
	if err != nil {
		return DeliveryProgress{}, err
	}

	if err := ctx.Err(); err != nil {
		return DeliveryProgress{}, err
	}

	if err := cylinderRepo.Update(ctx, c); err != nil {
		return DeliveryProgress{}, err
	}

	if err := orderRepo.Update(ctx, o); err != nil {
		return DeliveryProgress{}, err
	}

	if err := uow.HistoryRepository().Append(ctx, entry); err != nil {
		return DeliveryProgress{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return DeliveryProgress{}, err
	}

	h.publisher.Publish(ctx, events...)

	return DeliveryProgress{
		CylinderID:         c.ID(),
		State:              c.State(),
		OrderID:            o.ID(),
		OrderStatus:        o.Status(),
		TotalCylinders:     len(members),
		DeliveredCylinders: deliveredCount,
		IsOrderComplete:    o.Status() == order.Completed,
	}, nil
}
