package queries

import (
	"context"
	"time"

	"refill/internal/core/domain/model/printjob"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetStalePrintJobsQueryHandler struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGetStalePrintJobsQueryHandler(db *gorm.DB) GetStalePrintJobsQueryHandler {
	return GetStalePrintJobsQueryHandler{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Handle returns the stale jobs, longest waiting first.
func (h GetStalePrintJobsQueryHandler) Handle(
	ctx context.Context,
	query GetStalePrintJobsQuery,
) ([]GetStalePrintJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if h.db == nil {
		return nil, ErrReadModelUnavailable
	}

	now := h.now()
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, store_id, quantity, template_id, dispatched_at
		FROM print_jobs
		WHERE status = ? AND dispatched_at < ?
		ORDER BY dispatched_at
	`, int(printjob.Dispatched), now.Add(-query.OlderThan())).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]GetStalePrintJobsQueryResponse, 0)
	for rows.Next() {
		var (
			item        GetStalePrintJobsQueryResponse
			id, storeID uuid.UUID
		)

		if err = rows.Scan(&id, &storeID, &item.Quantity, &item.TemplateID, &item.DispatchedAt); err != nil {
			return nil, err
		}
		if item.PrintJobID, err = toKernelUUID(id); err != nil {
			return nil, err
		}
		if item.StoreID, err = toKernelUUID(storeID); err != nil {
			return nil, err
		}
		item.Age = now.Sub(item.DispatchedAt)

		jobs = append(jobs, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}
