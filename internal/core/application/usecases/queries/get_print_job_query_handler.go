package queries

import (
	"context"
	"database/sql"
	"errors"

	"refill/internal/core/domain/model/printjob"
	"refill/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetPrintJobQueryHandler struct {
	db *gorm.DB
}

func NewGetPrintJobQueryHandler(db *gorm.DB) GetPrintJobQueryHandler {
	return GetPrintJobQueryHandler{db: db}
}

// Handle fails with errs.ErrObjectNotFound for an unknown id.
func (h GetPrintJobQueryHandler) Handle(ctx context.Context, query GetPrintJobQuery) (GetPrintJobQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPrintJobQueryResponse{}, err
	}
	if h.db == nil {
		return GetPrintJobQueryResponse{}, ErrReadModelUnavailable
	}

	var (
		resp        GetPrintJobQueryResponse
		id, storeID uuid.UUID
		status      int
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			store_id,
			quantity,
			template_id,
			status,
			error_message,
			created_at,
			dispatched_at,
			completed_at
		FROM print_jobs
		WHERE id = ?
	`, query.PrintJobID().Bytes()).Row().Scan(
		&id,
		&storeID,
		&resp.Quantity,
		&resp.TemplateID,
		&status,
		&resp.ErrorMessage,
		&resp.CreatedAt,
		&resp.DispatchedAt,
		&resp.CompletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetPrintJobQueryResponse{}, errs.NewObjectNotFoundError("print job", query.PrintJobID().String())
	}
	if err != nil {
		return GetPrintJobQueryResponse{}, err
	}

	if resp.PrintJobID, err = toKernelUUID(id); err != nil {
		return GetPrintJobQueryResponse{}, err
	}
	if resp.StoreID, err = toKernelUUID(storeID); err != nil {
		return GetPrintJobQueryResponse{}, err
	}
	resp.Status = printjob.Status(status)

	return resp, nil
}
