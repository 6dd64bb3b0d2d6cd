package queries

import (
	"errors"
	"strings"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/guard"
)

// SearchCustomersLimit caps the number of customers a search returns.
const SearchCustomersLimit = 50

var (
	ErrSearchCustomersQueryIsNotConstructed = errors.New(
		"SearchCustomersQuery must be created via NewSearchCustomersQuery constructor",
	)
)

// SearchCustomersQuery matches customers by name substring (case-insensitive)
// or by the digits of their phone. A blank term lists customers by name.
type SearchCustomersQuery struct {
	term  string
	guard guard.ConstructorGuard
}

func NewSearchCustomersQuery(term string) SearchCustomersQuery {
	return SearchCustomersQuery{
		term:  strings.TrimSpace(term),
		guard: guard.NewConstructorGuard(),
	}
}

func (q SearchCustomersQuery) Validate() error {
	return q.guard.Validate(ErrSearchCustomersQueryIsNotConstructed)
}

func (q SearchCustomersQuery) Term() string {
	return q.term
}

type SearchCustomersQueryResponse struct {
	CustomerID  kernel.UUID
	Name        string
	Phone       string
	OpenOrders  int
	TotalOrders int
}
