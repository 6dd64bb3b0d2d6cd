package commands

import (
	"context"
	"errors"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/history"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/core/ports"
	"refill/internal/pkg/errs"
)

// ReadyProgress reports the filling progress of the order after one cylinder
// was marked Ready.
type ReadyProgress struct {
	CylinderID  kernel.UUID
	State       cylinder.State
	OrderID     kernel.UUID
	OrderStatus order.Status
	Total       int
	Ready       int
	// IsOrderComplete is true once the order is ReadyForPickup.
	IsOrderComplete bool
}

// MarkCylinderReadyCommandHandler fills a single cylinder and runs the rollup
// of the order holding it.
type MarkCylinderReadyCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

func NewMarkCylinderReadyCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
) MarkCylinderReadyCommandHandler {
	return MarkCylinderReadyCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle marks the cylinder Ready, reloads every member of its most recent
// order and rolls the order up. The order row is always written, so two
// cylinders of one order finishing concurrently cannot both miss the
// promotion.
func (h MarkCylinderReadyCommandHandler) Handle(
	ctx context.Context,
	cmd MarkCylinderReadyCommand,
) (ReadyProgress, error) {
	if err := cmd.Validate(); err != nil {
		return ReadyProgress{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ReadyProgress{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cylinderRepo := uow.CylinderRepository()
	orderRepo := uow.OrderRepository()

	c, err := cylinderRepo.Get(ctx, cmd.CylinderID())
	if err != nil {
		return ReadyProgress{}, err
	}

	o, err := orderRepo.FindLatestByCylinder(ctx, c.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ReadyProgress{}, errs.NewObjectNotFoundErrorWithCause("order", c.ID(), err)
	}
	if err != nil {
		return ReadyProgress{}, err
	}

	marked, err := c.MarkReady()
	if err != nil {
		return ReadyProgress{}, err
	}

	members, err := cylinderRepo.GetMany(ctx, o.CylinderIDs())
	if err != nil {
		return ReadyProgress{}, err
	}
	members = withCylinder(members, c)

	events := []kernel.DomainEvent{marked}
	if became := o.CheckAndUpdateStatus(members); became != nil {
		events = append(events, *became)
	}

	orderID := o.ID()
	entry, err := history.NewEntry(c.ID(), history.MarkedReady, "Cylinder filled", &orderID)
	if err != nil {
		return ReadyProgress{}, err
	}

	if err := ctx.Err(); err != nil {
		return ReadyProgress{}, err
	}

	if err := cylinderRepo.Update(ctx, c); err != nil {
		return ReadyProgress{}, err
	}

	if err := orderRepo.Update(ctx, o); err != nil {
		return ReadyProgress{}, err
	}

	if err := uow.HistoryRepository().Append(ctx, entry); err != nil {
		return ReadyProgress{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return ReadyProgress{}, err
	}

	h.publisher.Publish(ctx, events...)

	return ReadyProgress{
		CylinderID:      c.ID(),
		State:           c.State(),
		OrderID:         o.ID(),
		OrderStatus:     o.Status(),
		Total:           len(members),
		Ready:           countInState(members, cylinder.Ready),
		IsOrderComplete: o.Status() == order.ReadyForPickup,
	}, nil
}
