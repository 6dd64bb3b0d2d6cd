package queries

import (
	"context"
	"time"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/history"
	"refill/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetDashboardStatsQueryHandler struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGetDashboardStatsQueryHandler(db *gorm.DB) GetDashboardStatsQueryHandler {
	return GetDashboardStatsQueryHandler{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Handle computes every counter in one statement so they come from the same
// snapshot. Cylinders filled are counted from MarkedReady history entries.
func (h GetDashboardStatsQueryHandler) Handle(
	ctx context.Context,
	query GetDashboardStatsQuery,
) (GetDashboardStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDashboardStatsQueryResponse{}, err
	}
	if h.db == nil {
		return GetDashboardStatsQueryResponse{}, ErrReadModelUnavailable
	}

	now := h.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := today.AddDate(0, 0, -6)

	var stats GetDashboardStatsQueryResponse
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM orders WHERE status = @open),
			(SELECT COUNT(*) FROM orders WHERE status = @ready_for_pickup),
			(SELECT COUNT(*) FROM orders WHERE status = @completed AND completed_at >= @today),
			(SELECT COUNT(*) FROM orders WHERE status = @completed AND completed_at >= @week_ago),
			(SELECT COUNT(*) FROM orders WHERE status = @ready_for_pickup AND notified_at IS NULL),
			(SELECT COUNT(*) FROM cylinders WHERE state = @received),
			(SELECT COUNT(*) FROM cylinders WHERE state = @ready),
			(SELECT COUNT(*) FROM cylinders WHERE state = @problem),
			(SELECT COUNT(*) FROM cylinder_history WHERE event_type = @marked_ready AND occurred_at >= @today),
			(SELECT COUNT(*) FROM cylinder_history WHERE event_type = @marked_ready AND occurred_at >= @week_ago),
			(SELECT COUNT(*) FROM customers)
	`, map[string]any{
		"open":             int(order.Open),
		"ready_for_pickup": int(order.ReadyForPickup),
		"completed":        int(order.Completed),
		"received":         int(cylinder.Received),
		"ready":            int(cylinder.Ready),
		"problem":          int(cylinder.Problem),
		"marked_ready":     history.MarkedReady.String(),
		"today":            today,
		"week_ago":         weekAgo,
	}).Row().Scan(
		&stats.OrdersOpen,
		&stats.OrdersReadyForPickup,
		&stats.OrdersCompletedToday,
		&stats.OrdersCompletedThisWeek,
		&stats.OrdersAwaitingNotification,
		&stats.CylindersReceived,
		&stats.CylindersReady,
		&stats.CylindersWithProblem,
		&stats.CylindersFilledToday,
		&stats.CylindersFilledThisWeek,
		&stats.TotalCustomers,
	)
	if err != nil {
		return GetDashboardStatsQueryResponse{}, err
	}

	return stats, nil
}
