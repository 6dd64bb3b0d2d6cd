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
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type GetCustomerCylindersQueryHandler struct {
	db *gorm.DB
}

func NewGetCustomerCylindersQueryHandler(db *gorm.DB) GetCustomerCylindersQueryHandler {
	return GetCustomerCylindersQueryHandler{db: db}
}

// Handle fails with errs.ErrObjectNotFound for an unknown customer. A
// customer without orders gets an empty cylinder list.
func (h GetCustomerCylindersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerCylindersQuery,
) (GetCustomerCylindersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCustomerCylindersQueryResponse{}, err
	}
	if h.db == nil {
		return GetCustomerCylindersQueryResponse{}, ErrReadModelUnavailable
	}

	resp, err := h.customer(ctx, query)
	if err != nil {
		return GetCustomerCylindersQueryResponse{}, err
	}

	if resp.Cylinders, err = h.cylinders(ctx, query.CustomerID().Bytes()); err != nil {
		return GetCustomerCylindersQueryResponse{}, err
	}
	if len(resp.Cylinders) == 0 {
		return resp, nil
	}

	ledger, err := h.history(ctx, resp.Cylinders)
	if err != nil {
		return GetCustomerCylindersQueryResponse{}, err
	}
	for i := range resp.Cylinders {
		item := &resp.Cylinders[i]
		item.History = ledger[item.CylinderID.String()]
		if item.History == nil {
			item.History = make([]HistoryItem, 0)
		}
	}

	return resp, nil
}

func (h GetCustomerCylindersQueryHandler) customer(
	ctx context.Context,
	query GetCustomerCylindersQuery,
) (GetCustomerCylindersQueryResponse, error) {
	resp := GetCustomerCylindersQueryResponse{CustomerID: query.CustomerID()}

	err := h.db.WithContext(ctx).
		Raw(`SELECT name, phone FROM customers WHERE id = ?`, query.CustomerID().Bytes()).
		Row().
		Scan(&resp.Name, &resp.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return resp, errs.NewObjectNotFoundError("customer", query.CustomerID().String())
		}
		return resp, err
	}

	return resp, nil
}

func (h GetCustomerCylindersQueryHandler) cylinders(ctx context.Context, customerID uuid.UUID) ([]CustomerCylinder, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.status,
			c.id,
			c.sequential_number,
			COALESCE(c.label_token, ''),
			c.state,
			c.created_at
		FROM orders o
		JOIN order_cylinders oc ON oc.order_id = o.id
		JOIN cylinders c ON c.id = oc.cylinder_id
		WHERE o.customer_id = ?
		ORDER BY o.created_at DESC, oc.position
	`, customerID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]CustomerCylinder, 0)
	for rows.Next() {
		var (
			item                CustomerCylinder
			orderID, cylinderID uuid.UUID
			status, state       int
		)

		err = rows.Scan(
			&orderID,
			&status,
			&cylinderID,
			&item.SequentialNumber,
			&item.LabelToken,
			&state,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if item.OrderID, err = toKernelUUID(orderID); err != nil {
			return nil, err
		}
		if item.CylinderID, err = toKernelUUID(cylinderID); err != nil {
			return nil, err
		}
		item.OrderStatus = order.Status(status)
		item.State = cylinder.State(state)

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// history loads the ledgers of all listed cylinders in one statement, keyed
// by cylinder id.
func (h GetCustomerCylindersQueryHandler) history(
	ctx context.Context,
	items []CustomerCylinder,
) (map[string][]HistoryItem, error) {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		id := item.CylinderID.String()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT cylinder_id, event_type, details, order_id, occurred_at
		FROM cylinder_history
		WHERE cylinder_id = ANY(?::uuid[])
		ORDER BY occurred_at DESC, seq DESC
	`, pq.Array(ids)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ledger := make(map[string][]HistoryItem, len(ids))
	for rows.Next() {
		var (
			item       HistoryItem
			cylinderID uuid.UUID
			eventType  string
			orderID    *uuid.UUID
		)

		if err = rows.Scan(&cylinderID, &eventType, &item.Details, &orderID, &item.Timestamp); err != nil {
			return nil, err
		}

		if item.EventType, err = history.ParseEventType(eventType); err != nil {
			return nil, err
		}
		if item.OrderID, err = toKernelUUIDPtr(orderID); err != nil {
			return nil, err
		}

		key := cylinderID.String()
		ledger[key] = append(ledger[key], item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return ledger, nil
}
