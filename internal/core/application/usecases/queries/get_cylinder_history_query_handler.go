package queries

import (
	"context"
	"database/sql"
	"errors"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/history"
	"refill/internal/core/domain/model/order"
	"refill/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetCylinderHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetCylinderHistoryQueryHandler(db *gorm.DB) GetCylinderHistoryQueryHandler {
	return GetCylinderHistoryQueryHandler{db: db}
}

// Handle fails with errs.ErrObjectNotFound when no cylinder matches.
func (h GetCylinderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetCylinderHistoryQuery,
) (GetCylinderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCylinderHistoryQueryResponse{}, err
	}
	if h.db == nil {
		return GetCylinderHistoryQueryResponse{}, ErrReadModelUnavailable
	}

	resp, err := h.cylinder(ctx, query)
	if err != nil {
		return GetCylinderHistoryQueryResponse{}, err
	}

	if resp.CurrentOrder, err = h.currentOrder(ctx, resp.CylinderID.Bytes()); err != nil {
		return GetCylinderHistoryQueryResponse{}, err
	}

	if resp.History, err = h.history(ctx, resp.CylinderID.Bytes()); err != nil {
		return GetCylinderHistoryQueryResponse{}, err
	}

	return resp, nil
}

func (h GetCylinderHistoryQueryHandler) cylinder(
	ctx context.Context,
	query GetCylinderHistoryQuery,
) (GetCylinderHistoryQueryResponse, error) {
	const columns = `id, sequential_number, COALESCE(label_token, ''), state, occurrence_notes, created_at`

	var (
		row      *gorm.DB
		notFound any
	)
	if id, ok := query.CylinderID(); ok {
		notFound = id.String()
		row = h.db.WithContext(ctx).Raw(`SELECT `+columns+` FROM cylinders WHERE id = ?`, id.Bytes())
	} else {
		token := query.Token()
		notFound = token.Label.String()
		row = h.db.WithContext(ctx).Raw(`
			SELECT `+columns+` FROM (
				SELECT *, 0 AS priority FROM cylinders WHERE sequential_number = ?
				UNION ALL
				SELECT *, 1 AS priority FROM cylinders WHERE label_token = ?
			) matches
			ORDER BY priority
			LIMIT 1
		`, token.SequentialNumber, token.Label.String())
	}

	var (
		resp  GetCylinderHistoryQueryResponse
		id    uuid.UUID
		state int
	)
	err := row.Row().Scan(
		&id,
		&resp.SequentialNumber,
		&resp.LabelToken,
		&state,
		&resp.OccurrenceNotes,
		&resp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return resp, errs.NewObjectNotFoundError("cylinder", notFound)
		}
		return resp, err
	}

	if resp.CylinderID, err = toKernelUUID(id); err != nil {
		return resp, err
	}
	resp.State = cylinder.State(state)

	return resp, nil
}

func (h GetCylinderHistoryQueryHandler) currentOrder(ctx context.Context, cylinderID uuid.UUID) (*CylinderOrder, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT o.id, o.status, cu.id, cu.name, cu.phone
		FROM orders o
		JOIN order_cylinders oc ON oc.order_id = o.id
		JOIN customers cu ON cu.id = o.customer_id
		WHERE oc.cylinder_id = ?
		ORDER BY o.created_at DESC
		LIMIT 1
	`, cylinderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var (
		current             CylinderOrder
		orderID, customerID uuid.UUID
		status              int
	)
	if err = rows.Scan(&orderID, &status, &customerID, &current.CustomerName, &current.CustomerPhone); err != nil {
		return nil, err
	}
	if current.OrderID, err = toKernelUUID(orderID); err != nil {
		return nil, err
	}
	if current.CustomerID, err = toKernelUUID(customerID); err != nil {
		return nil, err
	}
	current.Status = order.Status(status)

	return &current, nil
}

func (h GetCylinderHistoryQueryHandler) history(ctx context.Context, cylinderID uuid.UUID) ([]HistoryItem, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT event_type, details, order_id, occurred_at
		FROM cylinder_history
		WHERE cylinder_id = ?
		ORDER BY occurred_at DESC, seq DESC
	`, cylinderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]HistoryItem, 0)
	for rows.Next() {
		var (
			item      HistoryItem
			eventType string
			orderID   *uuid.UUID
		)

		if err = rows.Scan(&eventType, &item.Details, &orderID, &item.Timestamp); err != nil {
			return nil, err
		}

		if item.EventType, err = history.ParseEventType(eventType); err != nil {
			return nil, err
		}
		if item.OrderID, err = toKernelUUIDPtr(orderID); err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
