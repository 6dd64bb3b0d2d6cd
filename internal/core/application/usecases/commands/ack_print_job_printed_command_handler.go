package commands

import (
	"context"

	"refill/internal/core/domain/model/printjob"
	"refill/internal/core/ports"
)

// AckPrintJobPrintedCommandHandler marks Dispatched jobs Printed. Duplicate
// acknowledgments of a Printed job succeed with the stored snapshot and write
// nothing.
type AckPrintJobPrintedCommandHandler struct {
	uowFactory PrintJobUoWFactory
	publisher  ports.EventPublisher
}

func NewAckPrintJobPrintedCommandHandler(
	uowFactory PrintJobUoWFactory,
	publisher ports.EventPublisher,
) AckPrintJobPrintedCommandHandler {
	return AckPrintJobPrintedCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h AckPrintJobPrintedCommandHandler) Handle(
	ctx context.Context,
	cmd AckPrintJobPrintedCommand,
) (PrintJobResult, error) {
	if err := cmd.Validate(); err != nil {
		return PrintJobResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PrintJobResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PrintJobRepository()

	job, err := repo.Get(ctx, cmd.PrintJobID())
	if err != nil {
		return PrintJobResult{}, err
	}

	if job.Status() == printjob.Printed {
		return newPrintJobResult(job), nil
	}

	printed, err := job.MarkAsPrinted()
	if err != nil {
		return PrintJobResult{}, err
	}

	if err := ctx.Err(); err != nil {
		return PrintJobResult{}, err
	}

	if err := repo.Update(ctx, job); err != nil {
		return PrintJobResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return PrintJobResult{}, err
	}

	h.publisher.Publish(ctx, printed)

	return newPrintJobResult(job), nil
}
