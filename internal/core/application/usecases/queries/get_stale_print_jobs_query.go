package queries

import (
	"errors"
	"fmt"
	"time"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"
	"refill/internal/pkg/guard"
)

var (
	ErrGetStalePrintJobsQueryIsNotConstructed = errors.New(
		"GetStalePrintJobsQuery must be created via NewGetStalePrintJobsQuery constructor",
	)
)

// GetStalePrintJobsQuery finds jobs that were dispatched more than olderThan
// ago and never acknowledged.
type GetStalePrintJobsQuery struct {
	olderThan time.Duration
	guard     guard.ConstructorGuard
}

func NewGetStalePrintJobsQuery(olderThan time.Duration) (GetStalePrintJobsQuery, error) {
	if olderThan <= 0 {
		return GetStalePrintJobsQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"older than",
			fmt.Errorf("%s is not greater than 0", olderThan),
		)
	}

	return GetStalePrintJobsQuery{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetStalePrintJobsQuery) Validate() error {
	return q.guard.Validate(ErrGetStalePrintJobsQueryIsNotConstructed)
}

func (q GetStalePrintJobsQuery) OlderThan() time.Duration {
	return q.olderThan
}

type GetStalePrintJobsQueryResponse struct {
	PrintJobID   kernel.UUID
	StoreID      kernel.UUID
	Quantity     int
	TemplateID   string
	DispatchedAt time.Time
	// Age is measured when the query ran.
	Age time.Duration
}
