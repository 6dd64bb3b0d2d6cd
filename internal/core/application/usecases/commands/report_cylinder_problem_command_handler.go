package commands

import (
	"context"
	"errors"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/history"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/pkg/errs"
)

type ProblemResult struct {
	CylinderID  kernel.UUID
	State       cylinder.State
	ProblemType string
	Notes       string
}

// ReportCylinderProblemCommandHandler moves cylinders to Problem from any
// state and refreshes the rollup of the Open order holding them.
type ReportCylinderProblemCommandHandler struct {
	uowFactory UoWFactory
}

func NewReportCylinderProblemCommandHandler(uowFactory UoWFactory) ReportCylinderProblemCommandHandler {
	return ReportCylinderProblemCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h ReportCylinderProblemCommandHandler) Handle(
	ctx context.Context,
	cmd ReportCylinderProblemCommand,
) (ProblemResult, error) {
	if err := cmd.Validate(); err != nil {
		return ProblemResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ProblemResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cylinderRepo := uow.CylinderRepository()
	orderRepo := uow.OrderRepository()

	c, err := cylinderRepo.Get(ctx, cmd.CylinderID())
	if err != nil {
		return ProblemResult{}, err
	}

	if err := c.ReportProblem(cmd.OccurrenceNotes()); err != nil {
		return ProblemResult{}, err
	}

	var (
		openOrder *order.Order
		orderID   *kernel.UUID
	)
	o, err := orderRepo.FindOpenByCylinder(ctx, c.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
	case err != nil:
		return ProblemResult{}, err
	default:
		members, err := cylinderRepo.GetMany(ctx, o.CylinderIDs())
		if err != nil {
			return ProblemResult{}, err
		}
		o.CheckAndUpdateStatus(withCylinder(members, c))
		openOrder = o
		id := o.ID()
		orderID = &id
	}

	entry, err := history.NewEntry(c.ID(), history.ProblemReported, cmd.OccurrenceNotes(), orderID)
	if err != nil {
		return ProblemResult{}, err
	}

	if err := ctx.Err(); err != nil {
		return ProblemResult{}, err
	}

	if err := cylinderRepo.Update(ctx, c); err != nil {
		return ProblemResult{}, err
	}

	if openOrder != nil {
		if err := orderRepo.Update(ctx, openOrder); err != nil {
			return ProblemResult{}, err
		}
	}

	if err := uow.HistoryRepository().Append(ctx, entry); err != nil {
		return ProblemResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return ProblemResult{}, err
	}

	return ProblemResult{
		CylinderID:  c.ID(),
		State:       c.State(),
		ProblemType: cmd.ProblemType(),
		Notes:       cmd.Notes(),
	}, nil
}
