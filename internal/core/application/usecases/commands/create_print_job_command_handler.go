package commands

import (
	"context"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/printjob"
	"refill/internal/core/ports"
)

// CreatePrintJobCommandHandler creates print jobs and hands them to the
// configured dispatcher.
type CreatePrintJobCommandHandler struct {
	uowFactory PrintJobUoWFactory
	dispatcher ports.PrintJobDispatcher
	publisher  ports.EventPublisher
}

func NewCreatePrintJobCommandHandler(
	uowFactory PrintJobUoWFactory,
	dispatcher ports.PrintJobDispatcher,
	publisher ports.EventPublisher,
) CreatePrintJobCommandHandler {
	return CreatePrintJobCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		publisher:  publisher,
	}
}

// Handle persists the Pending job, marks it Dispatched in a second unit of
// work and only then calls the dispatcher. The returned snapshot is read
// after dispatch, so a dispatcher that acknowledges synchronously shows up as
// Printed.
func (h CreatePrintJobCommandHandler) Handle(ctx context.Context, cmd CreatePrintJobCommand) (PrintJobResult, error) {
	if err := cmd.Validate(); err != nil {
		return PrintJobResult{}, err
	}

	job, created, err := printjob.NewPrintJob(kernel.NewUUID(), cmd.StoreID(), cmd.Quantity(), cmd.TemplateID())
	if err != nil {
		return PrintJobResult{}, err
	}

	if err := h.add(ctx, job); err != nil {
		return PrintJobResult{}, err
	}
	h.publisher.Publish(ctx, created)

	if err := h.dispatch(ctx, job.ID()); err != nil {
		return PrintJobResult{}, err
	}

	h.dispatcher.Dispatch(ctx, ports.PrintRequest{
		PrintJobID:    job.ID(),
		Quantity:      job.Quantity(),
		TemplateID:    job.TemplateID(),
		CustomerName:  cmd.CustomerName(),
		CustomerPhone: cmd.CustomerPhone(),
	})

	return h.snapshot(ctx, job.ID())
}

func (h CreatePrintJobCommandHandler) add(ctx context.Context, job *printjob.PrintJob) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := uow.PrintJobRepository().Add(ctx, job); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CreatePrintJobCommandHandler) dispatch(ctx context.Context, id kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PrintJobRepository()

	job, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := job.MarkAsDispatched(); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := repo.Update(ctx, job); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CreatePrintJobCommandHandler) snapshot(ctx context.Context, id kernel.UUID) (PrintJobResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return PrintJobResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	job, err := uow.PrintJobRepository().Get(ctx, id)
	if err != nil {
		return PrintJobResult{}, err
	}

	return newPrintJobResult(job), nil
}
