package queries

import (
	"errors"
	"time"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/printjob"
	"refill/internal/pkg/guard"
)

var (
	ErrGetPrintJobQueryIsNotConstructed = errors.New(
		"GetPrintJobQuery must be created via NewGetPrintJobQuery constructor",
	)
)

type GetPrintJobQuery struct {
	printJobID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewGetPrintJobQuery(printJobID kernel.UUID) (GetPrintJobQuery, error) {
	if err := printJobID.Validate(); err != nil {
		return GetPrintJobQuery{}, err
	}

	return GetPrintJobQuery{
		printJobID: printJobID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetPrintJobQuery) Validate() error {
	return q.guard.Validate(ErrGetPrintJobQueryIsNotConstructed)
}

func (q GetPrintJobQuery) PrintJobID() kernel.UUID {
	return q.printJobID
}

type GetPrintJobQueryResponse struct {
	PrintJobID   kernel.UUID
	StoreID      kernel.UUID
	Quantity     int
	TemplateID   string
	Status       printjob.Status
	ErrorMessage string
	CreatedAt    time.Time
	DispatchedAt *time.Time
	CompletedAt  *time.Time
}
