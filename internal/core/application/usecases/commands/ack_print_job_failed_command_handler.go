package commands

import (
	"context"

	"refill/internal/core/ports"
)

// AckPrintJobFailedCommandHandler marks Dispatched jobs Failed. Failed jobs
// are not retried.
type AckPrintJobFailedCommandHandler struct {
	uowFactory PrintJobUoWFactory
	publisher  ports.EventPublisher
}

func NewAckPrintJobFailedCommandHandler(
	uowFactory PrintJobUoWFactory,
	publisher ports.EventPublisher,
) AckPrintJobFailedCommandHandler {
	return AckPrintJobFailedCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h AckPrintJobFailedCommandHandler) Handle(
	ctx context.Context,
	cmd AckPrintJobFailedCommand,
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

	failed, err := job.MarkAsFailed(cmd.ErrorMessage())
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

	h.publisher.Publish(ctx, failed)

	return newPrintJobResult(job), nil
}
