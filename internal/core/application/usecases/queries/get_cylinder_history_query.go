package queries

import (
	"errors"
	"time"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/history"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/core/domain/services"
	"refill/internal/pkg/guard"
)

var (
	ErrGetCylinderHistoryQueryIsNotConstructed = errors.New(
		"GetCylinderHistoryQuery must be created via NewGetCylinderHistoryQuery or NewGetCylinderHistoryByTokenQuery",
	)
)

// GetCylinderHistoryQuery looks a cylinder up either by id or by a scanned
// token. A token is read the way scans are: the sequential number reading
// ("#0007") wins over the label reading.
//
// Example:
//
//	query, err := queries.NewGetCylinderHistoryByTokenQuery("#0007")
//	if err != nil {
//	    return err
//	}
//	details, err := handler.Handle(ctx, query)
type GetCylinderHistoryQuery struct {
	cylinderID *kernel.UUID
	token      services.ScanToken
	guard      guard.ConstructorGuard
}

func NewGetCylinderHistoryQuery(cylinderID kernel.UUID) (GetCylinderHistoryQuery, error) {
	if err := cylinderID.Validate(); err != nil {
		return GetCylinderHistoryQuery{}, err
	}

	return GetCylinderHistoryQuery{
		cylinderID: &cylinderID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// NewGetCylinderHistoryByTokenQuery fails with errs.ErrValueIsRequired for a
// blank token.
func NewGetCylinderHistoryByTokenQuery(raw string) (GetCylinderHistoryQuery, error) {
	token, err := services.ParseScanToken(raw)
	if err != nil {
		return GetCylinderHistoryQuery{}, err
	}

	return GetCylinderHistoryQuery{
		token: token,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetCylinderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetCylinderHistoryQueryIsNotConstructed)
}

// CylinderID returns the id the query was built with, if any.
func (q GetCylinderHistoryQuery) CylinderID() (kernel.UUID, bool) {
	if q.cylinderID == nil {
		return kernel.UUID{}, false
	}
	return *q.cylinderID, true
}

func (q GetCylinderHistoryQuery) Token() services.ScanToken {
	return q.token
}

type GetCylinderHistoryQueryResponse struct {
	CylinderID       kernel.UUID
	SequentialNumber int64
	LabelToken       string
	State            cylinder.State
	OccurrenceNotes  string
	CreatedAt        time.Time
	// CurrentOrder is the most recently created order holding the cylinder,
	// nil when it was never attached to one.
	CurrentOrder *CylinderOrder
	// History is newest first.
	History []HistoryItem
}

type CylinderOrder struct {
	OrderID       kernel.UUID
	Status        order.Status
	CustomerID    kernel.UUID
	CustomerName  string
	CustomerPhone string
}

type HistoryItem struct {
	EventType history.EventType
	Details   string
	OrderID   *kernel.UUID
	Timestamp time.Time
}
