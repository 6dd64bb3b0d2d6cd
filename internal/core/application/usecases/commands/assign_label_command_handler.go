package commands

import (
	"context"
	"errors"
	"fmt"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/history"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/ports"
	"refill/internal/pkg/errs"
)

type LabelResult struct {
	CylinderID kernel.UUID
	LabelToken string
	// PreviousLabelToken is empty when the cylinder had no label before.
	PreviousLabelToken string
}

// AssignLabelCommandHandler labels cylinders. A label belongs to one cylinder
// at a time.
type AssignLabelCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

func NewAssignLabelCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) AssignLabelCommandHandler {
	return AssignLabelCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle fails with errs.ErrObjectAlreadyExists when another cylinder holds the
// label. Re-assigning the label the cylinder already has writes nothing.
func (h AssignLabelCommandHandler) Handle(ctx context.Context, cmd AssignLabelCommand) (LabelResult, error) {
	if err := cmd.Validate(); err != nil {
		return LabelResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return LabelResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cylinderRepo := uow.CylinderRepository()

	c, err := cylinderRepo.Get(ctx, cmd.CylinderID())
	if err != nil {
		return LabelResult{}, err
	}

	if err := ensureLabelIsFree(ctx, cylinderRepo, cmd.LabelToken(), c.ID()); err != nil {
		return LabelResult{}, err
	}

	assigned, err := c.AssignLabel(cmd.LabelToken())
	if err != nil {
		return LabelResult{}, err
	}
	if assigned == nil {
		return LabelResult{
			CylinderID: c.ID(),
			LabelToken: cmd.LabelToken().String(),
		}, nil
	}

	entry, err := history.NewEntry(c.ID(), history.LabelAssigned, labelDetails(*assigned), nil)
	if err != nil {
		return LabelResult{}, err
	}

	if err := ctx.Err(); err != nil {
		return LabelResult{}, err
	}

	if err := cylinderRepo.Update(ctx, c); err != nil {
		return LabelResult{}, err
	}

	if err := uow.HistoryRepository().Append(ctx, entry); err != nil {
		return LabelResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return LabelResult{}, err
	}

	h.publisher.Publish(ctx, *assigned)

	return LabelResult{
		CylinderID:         c.ID(),
		LabelToken:         assigned.LabelToken,
		PreviousLabelToken: assigned.PreviousLabelToken,
	}, nil
}

// ensureLabelIsFree fails when a cylinder other than owner holds token. A zero
// owner means nobody may hold it.
func ensureLabelIsFree(
	ctx context.Context,
	repo ports.CylinderRepository,
	token kernel.LabelToken,
	owner kernel.UUID,
) error {
	holder, err := repo.FindByLabelToken(ctx, token)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if holder.ID().IsEqual(owner) {
		return nil
	}

	return errs.NewObjectAlreadyExistsErrorWithCause(
		"label token",
		token.String(),
		fmt.Errorf("label is in use by cylinder #%d", holder.SequentialNumber()),
	)
}

func labelDetails(e cylinder.LabelAssignedEvent) string {
	if e.PreviousLabelToken != "" {
		return fmt.Sprintf("Label changed: %s → %s", e.PreviousLabelToken, e.LabelToken)
	}
	return "Label assigned: " + e.LabelToken
}
