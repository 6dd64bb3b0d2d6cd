package queries

import (
	"errors"
	"time"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/guard"
)

var (
	ErrGetFillingQueueQueryIsNotConstructed = errors.New(
		"GetFillingQueueQuery must be created via NewGetFillingQueueQuery constructor",
	)
)

// GetFillingQueueQuery lists the cylinders waiting to be filled: Received
// cylinders attached to Open orders, oldest first.
//
// Example:
//
//	queue, err := handler.Handle(ctx, queries.NewGetFillingQueueQuery())
//	for _, item := range queue {
//	    fmt.Printf("#%04d for %s (%d/%d ready)\n", item.SequentialNumber,
//	        item.CustomerName, item.ReadyCylindersInOrder, item.TotalCylindersInOrder)
//	}
type GetFillingQueueQuery struct {
	guard guard.ConstructorGuard
}

func NewGetFillingQueueQuery() GetFillingQueueQuery {
	return GetFillingQueueQuery{guard: guard.NewConstructorGuard()}
}

func (q GetFillingQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetFillingQueueQueryIsNotConstructed)
}

// GetFillingQueueQueryResponse is one cylinder of the filling queue together
// with the progress of its order.
type GetFillingQueueQueryResponse struct {
	CylinderID       kernel.UUID
	SequentialNumber int64
	// LabelToken is empty for unlabelled cylinders.
	LabelToken string
	State      cylinder.State
	ReceivedAt time.Time

	OrderID               kernel.UUID
	CustomerName          string
	CustomerPhone         string
	TotalCylindersInOrder int
	ReadyCylindersInOrder int
}
