package memory

import (
	"context"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/printjob"
	"refill/internal/pkg/errs"
)

// PrintJobRepository implements ports.PrintJobRepository over a unit of work.
type PrintJobRepository struct {
	uow *UnitOfWork
}

func (r *PrintJobRepository) Add(_ context.Context, aggregate *printjob.PrintJob) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s, err := r.uow.current()
	if err != nil {
		return err
	}

	if _, ok := s.printJobs[aggregate.ID()]; ok {
		return errs.NewObjectAlreadyExistsError("print job", aggregate.ID().String())
	}

	s.printJobs[aggregate.ID()] = printJobFromDomain(aggregate, aggregate.Version())
	return nil
}

func (r *PrintJobRepository) Update(_ context.Context, aggregate *printjob.PrintJob) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s, err := r.uow.current()
	if err != nil {
		return err
	}

	stored, ok := s.printJobs[aggregate.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("print job", aggregate.ID().String())
	}
	if stored.version != aggregate.Version() {
		return errs.NewVersionIsInvalidError("print job")
	}

	s.printJobs[aggregate.ID()] = printJobFromDomain(aggregate, stored.version+1)
	return nil
}

func (r *PrintJobRepository) Get(_ context.Context, id kernel.UUID) (*printjob.PrintJob, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	s, err := r.uow.current()
	if err != nil {
		return nil, err
	}

	rec, ok := s.printJobs[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("print job", id.String())
	}

	return printjob.RestorePrintJob(
		rec.id,
		rec.storeID,
		rec.quantity,
		rec.templateID,
		rec.status,
		rec.errorMessage,
		rec.createdAt,
		rec.dispatchedAt,
		rec.completedAt,
		rec.version,
	)
}

func printJobFromDomain(j *printjob.PrintJob, version int) printJobRecord {
	return printJobRecord{
		id:           j.ID(),
		storeID:      j.StoreID(),
		quantity:     j.Quantity(),
		templateID:   j.TemplateID(),
		status:       j.Status(),
		errorMessage: j.ErrorMessage(),
		createdAt:    j.CreatedAt(),
		dispatchedAt: j.DispatchedAt(),
		completedAt:  j.CompletedAt(),
		version:      version,
	}
}
