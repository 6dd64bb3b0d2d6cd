package commands

import (
	"context"
	"errors"

	"refill/internal/core/domain/model/customer"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/ports"
	"refill/internal/pkg/errs"
)

// CreateCustomerCommandHandler registers customers. Phone numbers are unique
// by their normalized digits.
type CreateCustomerCommandHandler struct {
	uowFactory CustomerUoWFactory
	publisher  ports.EventPublisher
}

func NewCreateCustomerCommandHandler(
	uowFactory CustomerUoWFactory,
	publisher ports.EventPublisher,
) CreateCustomerCommandHandler {
	return CreateCustomerCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle fails with errs.ErrObjectAlreadyExists when the phone is taken.
func (h CreateCustomerCommandHandler) Handle(ctx context.Context, cmd CreateCustomerCommand) (CustomerResult, error) {
	if err := cmd.Validate(); err != nil {
		return CustomerResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CustomerResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customerRepo := uow.CustomerRepository()

	if err := ensurePhoneIsFree(ctx, customerRepo, cmd.Phone(), kernel.UUID{}); err != nil {
		return CustomerResult{}, err
	}

	c, created, err := customer.NewCustomer(kernel.NewUUID(), cmd.Name(), cmd.Phone())
	if err != nil {
		return CustomerResult{}, err
	}

	if err := ctx.Err(); err != nil {
		return CustomerResult{}, err
	}

	if err := customerRepo.Add(ctx, c); err != nil {
		return CustomerResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return CustomerResult{}, err
	}

	h.publisher.Publish(ctx, created)

	return newCustomerResult(c), nil
}

// ensurePhoneIsFree fails when a customer other than owner holds phone. A zero
// owner means nobody may hold it.
func ensurePhoneIsFree(
	ctx context.Context,
	repo ports.CustomerRepository,
	phone kernel.PhoneNumber,
	owner kernel.UUID,
) error {
	existing, err := repo.FindByPhone(ctx, phone)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if existing.ID().IsEqual(owner) {
		return nil
	}

	return errs.NewObjectAlreadyExistsErrorWithCause(
		"phone",
		phone.String(),
		errors.New("customer with this phone already exists"),
	)
}
