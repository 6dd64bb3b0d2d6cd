package queries

import (
	"context"
	"time"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type GetReadyForPickupQueryHandler struct {
	db *gorm.DB
}

func NewGetReadyForPickupQueryHandler(db *gorm.DB) GetReadyForPickupQueryHandler {
	return GetReadyForPickupQueryHandler{db: db}
}

// Handle loads the matching orders first and then all their cylinders in a
// single statement keyed by an array of order ids.
func (h GetReadyForPickupQueryHandler) Handle(
	ctx context.Context,
	query GetReadyForPickupQuery,
) ([]GetReadyForPickupQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if h.db == nil {
		return nil, ErrReadModelUnavailable
	}

	orders, err := h.orders(ctx, query.Search())
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	index := make(map[string]int, len(orders))
	ids := make([]string, 0, len(orders))
	for i, o := range orders {
		index[o.OrderID.String()] = i
		ids = append(ids, o.OrderID.String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			oc.order_id,
			c.id,
			c.sequential_number,
			COALESCE(c.label_token, ''),
			c.state
		FROM order_cylinders oc
		JOIN cylinders c ON c.id = oc.cylinder_id
		WHERE oc.order_id = ANY(?::uuid[])
		ORDER BY oc.order_id, oc.position
	`, pq.Array(ids)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID, cylinderID uuid.UUID
			item                PickupCylinder
			state               int
		)

		if err = rows.Scan(&orderID, &cylinderID, &item.SequentialNumber, &item.LabelToken, &state); err != nil {
			return nil, err
		}

		if item.CylinderID, err = toKernelUUID(cylinderID); err != nil {
			return nil, err
		}
		item.State = cylinder.State(state)
		item.IsDelivered = item.State == cylinder.Delivered

		i, ok := index[orderID.String()]
		if !ok {
			continue
		}
		o := &orders[i]
		o.Cylinders = append(o.Cylinders, item)
		o.TotalCylinders++
		if item.IsDelivered {
			o.DeliveredCylinders++
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (h GetReadyForPickupQueryHandler) orders(ctx context.Context, search string) ([]GetReadyForPickupQueryResponse, error) {
	digits := digitsOf(search)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.customer_id,
			cu.name,
			cu.phone,
			o.status,
			o.created_at,
			o.notified_at
		FROM orders o
		JOIN customers cu ON cu.id = o.customer_id
		WHERE o.status = ?
			AND (?::text = '' OR cu.name ILIKE ? OR (?::text <> '' AND cu.phone LIKE ?))
		ORDER BY o.created_at
	`, int(order.ReadyForPickup), search, containsPattern(search), digits, containsPattern(digits)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetReadyForPickupQueryResponse, 0)
	for rows.Next() {
		var (
			item                GetReadyForPickupQueryResponse
			orderID, customerID uuid.UUID
			status              int
			notifiedAt          *time.Time
		)

		err = rows.Scan(
			&orderID,
			&customerID,
			&item.CustomerName,
			&item.CustomerPhone,
			&status,
			&item.CreatedAt,
			&notifiedAt,
		)
		if err != nil {
			return nil, err
		}

		if item.OrderID, err = toKernelUUID(orderID); err != nil {
			return nil, err
		}
		if item.CustomerID, err = toKernelUUID(customerID); err != nil {
			return nil, err
		}
		item.Status = order.Status(status)
		item.NotifiedAt = notifiedAt
		item.NeedsNotification = notifiedAt == nil
		item.Cylinders = make([]PickupCylinder, 0)

		orders = append(orders, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
