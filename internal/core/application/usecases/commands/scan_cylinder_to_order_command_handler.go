package commands

import (
	"context"
	"errors"

	"refill/internal/core/domain/services"
	"refill/internal/pkg/errs"
)

// ScanCylinderToOrderCommandHandler attaches scanned cylinders to orders and
// keeps every cylinder in at most one Open order.
type ScanCylinderToOrderCommandHandler struct {
	uowFactory UoWFactory
	resolver   services.ScanResolver
}

func NewScanCylinderToOrderCommandHandler(uowFactory UoWFactory) ScanCylinderToOrderCommandHandler {
	return ScanCylinderToOrderCommandHandler{
		uowFactory: uowFactory,
		resolver:   services.NewScanResolver(),
	}
}

// Handle resolves the token by sequential number first, then by label. It
// fails with ErrCylinderInAnotherOpenOrder when a different Open order holds
// the cylinder, and with errs.ErrObjectAlreadyExists when this order already
// does. The cylinder row is written too, so two orders racing for the same
// cylinder cannot both commit.
func (h ScanCylinderToOrderCommandHandler) Handle(
	ctx context.Context,
	cmd ScanCylinderToOrderCommand,
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

	c, err := h.resolver.Resolve(ctx, cmd.Token(), cylinderRepo)
	if err != nil {
		return CylinderResult{}, err
	}

	holder, err := orderRepo.FindOpenByCylinder(ctx, c.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
	case err != nil:
		return CylinderResult{}, err
	case !holder.IsEqual(o):
		return CylinderResult{}, ErrCylinderInAnotherOpenOrder
	}

	if err := o.AddCylinder(c); err != nil {
		return CylinderResult{}, err
	}

	if err := ctx.Err(); err != nil {
		return CylinderResult{}, err
	}

	if err := cylinderRepo.Update(ctx, c); err != nil {
		return CylinderResult{}, err
	}

	if err := orderRepo.Update(ctx, o); err != nil {
		return CylinderResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return CylinderResult{}, err
	}

	return newCylinderResult(c), nil
}
