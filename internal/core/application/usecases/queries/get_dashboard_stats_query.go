package queries

import (
	"errors"

	"refill/internal/pkg/guard"
)

var (
	ErrGetDashboardStatsQueryIsNotConstructed = errors.New(
		"GetDashboardStatsQuery must be created via NewGetDashboardStatsQuery constructor",
	)
)

// GetDashboardStatsQuery summarizes the shop floor. "Today" and "this week"
// are UTC calendar days; the week is the last seven days including today.
type GetDashboardStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetDashboardStatsQuery() GetDashboardStatsQuery {
	return GetDashboardStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetDashboardStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardStatsQueryIsNotConstructed)
}

type GetDashboardStatsQueryResponse struct {
	OrdersOpen                 int
	OrdersReadyForPickup       int
	OrdersCompletedToday       int
	OrdersCompletedThisWeek    int
	OrdersAwaitingNotification int

	CylindersReceived       int
	CylindersReady          int
	CylindersWithProblem    int
	CylindersFilledToday    int
	CylindersFilledThisWeek int

	TotalCustomers int
}
