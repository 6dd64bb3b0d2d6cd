package queries

import (
	"context"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetFillingQueueQueryHandler struct {
	db *gorm.DB
}

func NewGetFillingQueueQueryHandler(db *gorm.DB) GetFillingQueueQueryHandler {
	return GetFillingQueueQueryHandler{db: db}
}

// Handle counts ready cylinders from the cylinders table, not from the
// membership mirrors.
func (h GetFillingQueueQueryHandler) Handle(
	ctx context.Context,
	query GetFillingQueueQuery,
) ([]GetFillingQueueQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if h.db == nil {
		return nil, ErrReadModelUnavailable
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.sequential_number,
			COALESCE(c.label_token, ''),
			c.state,
			c.created_at,
			o.id,
			cu.name,
			cu.phone,
			(SELECT COUNT(*) FROM order_cylinders t WHERE t.order_id = o.id),
			(SELECT COUNT(*)
				FROM order_cylinders r
				JOIN cylinders rc ON rc.id = r.cylinder_id
				WHERE r.order_id = o.id AND rc.state = ?)
		FROM cylinders c
		JOIN order_cylinders oc ON oc.cylinder_id = c.id
		JOIN orders o ON o.id = oc.order_id
		JOIN customers cu ON cu.id = o.customer_id
		WHERE c.state = ? AND o.status = ?
		ORDER BY c.created_at, c.sequential_number
	`, int(cylinder.Ready), int(cylinder.Received), int(order.Open)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	queue := make([]GetFillingQueueQueryResponse, 0)
	for rows.Next() {
		var (
			item                GetFillingQueueQueryResponse
			cylinderID, orderID uuid.UUID
			state               int
		)

		err = rows.Scan(
			&cylinderID,
			&item.SequentialNumber,
			&item.LabelToken,
			&state,
			&item.ReceivedAt,
			&orderID,
			&item.CustomerName,
			&item.CustomerPhone,
			&item.TotalCylindersInOrder,
			&item.ReadyCylindersInOrder,
		)
		if err != nil {
			return nil, err
		}

		if item.CylinderID, err = toKernelUUID(cylinderID); err != nil {
			return nil, err
		}
		if item.OrderID, err = toKernelUUID(orderID); err != nil {
			return nil, err
		}
		item.State = cylinder.State(state)

		queue = append(queue, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return queue, nil
}
