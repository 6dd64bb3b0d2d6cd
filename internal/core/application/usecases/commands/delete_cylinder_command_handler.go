package commands

import (
	"context"
	"errors"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/ports"
	"refill/internal/pkg/errs"
)

// DeleteCylinderCommandHandler removes the history entries, then the order
// memberships and finally the cylinder, in one unit of work. An Open order
// left with only Ready members is promoted to ReadyForPickup.
type DeleteCylinderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

func NewDeleteCylinderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) DeleteCylinderCommandHandler {
	return DeleteCylinderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h DeleteCylinderCommandHandler) Handle(ctx context.Context, cmd DeleteCylinderCommand) error {
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

	cylinderRepo := uow.CylinderRepository()
	orderRepo := uow.OrderRepository()

	c, err := cylinderRepo.Get(ctx, cmd.CylinderID())
	if err != nil {
		return err
	}

	var openOrderID *kernel.UUID
	open, err := orderRepo.FindOpenByCylinder(ctx, c.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
	case err != nil:
		return err
	default:
		id := open.ID()
		openOrderID = &id
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := uow.HistoryRepository().DeleteByCylinder(ctx, c.ID()); err != nil {
		return err
	}

	if err := orderRepo.RemoveCylinder(ctx, c.ID()); err != nil {
		return err
	}

	if err := cylinderRepo.Delete(ctx, c.ID()); err != nil {
		return err
	}

	var events []kernel.DomainEvent
	if openOrderID != nil {
		o, err := orderRepo.Get(ctx, *openOrderID)
		if err != nil {
			return err
		}

		members, err := cylinderRepo.GetMany(ctx, o.CylinderIDs())
		if err != nil {
			return err
		}

		if became := o.CheckAndUpdateStatus(members); became != nil {
			events = append(events, *became)
		}

		if err := orderRepo.Update(ctx, o); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if len(events) > 0 {
		h.publisher.Publish(ctx, events...)
	}
	return nil
}
