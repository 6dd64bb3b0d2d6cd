package queries

import (
	"context"

	"refill/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SearchCustomersQueryHandler struct {
	db *gorm.DB
}

func NewSearchCustomersQueryHandler(db *gorm.DB) SearchCustomersQueryHandler {
	return SearchCustomersQueryHandler{db: db}
}

func (h SearchCustomersQueryHandler) Handle(
	ctx context.Context,
	query SearchCustomersQuery,
) ([]SearchCustomersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if h.db == nil {
		return nil, ErrReadModelUnavailable
	}

	term := query.Term()
	digits := digitsOf(term)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			cu.id,
			cu.name,
			cu.phone,
			COUNT(o.id) FILTER (WHERE o.status = ?),
			COUNT(o.id)
		FROM customers cu
		LEFT JOIN orders o ON o.customer_id = cu.id
		WHERE ?::text = '' OR cu.name ILIKE ? OR (?::text <> '' AND cu.phone LIKE ?)
		GROUP BY cu.id, cu.name, cu.phone
		ORDER BY cu.name, cu.phone
		LIMIT ?
	`, int(order.Open), term, containsPattern(term), digits, containsPattern(digits), SearchCustomersLimit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]SearchCustomersQueryResponse, 0)
	for rows.Next() {
		var (
			item SearchCustomersQueryResponse
			id   uuid.UUID
		)

		if err = rows.Scan(&id, &item.Name, &item.Phone, &item.OpenOrders, &item.TotalOrders); err != nil {
			return nil, err
		}
		if item.CustomerID, err = toKernelUUID(id); err != nil {
			return nil, err
		}

		customers = append(customers, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return customers, nil
}
