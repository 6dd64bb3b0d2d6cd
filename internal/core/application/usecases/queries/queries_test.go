package queries_test

import (
	"testing"

	"refill/internal/core/application/usecases/queries"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	assert.ErrorIs(t, queries.GetFillingQueueQuery{}.Validate(), queries.ErrGetFillingQueueQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetReadyForPickupQuery{}.Validate(), queries.ErrGetReadyForPickupQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetCylinderHistoryQuery{}.Validate(), queries.ErrGetCylinderHistoryQueryIsNotConstructed)
	assert.ErrorIs(t, queries.SearchCustomersQuery{}.Validate(), queries.ErrSearchCustomersQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetPrintJobQuery{}.Validate(), queries.ErrGetPrintJobQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetStalePrintJobsQuery{}.Validate(), queries.ErrGetStalePrintJobsQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetDashboardStatsQuery{}.Validate(), queries.ErrGetDashboardStatsQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetCustomerCylindersQuery{}.Validate(), queries.ErrGetCustomerCylindersQueryIsNotConstructed)
}

func TestNewGetReadyForPickupQuery_TrimsSearch(t *testing.T) {
	query := queries.NewGetReadyForPickupQuery("  maria ")

	require.NoError(t, query.Validate())
	assert.Equal(t, "maria", query.Search())
}

func TestNewGetCylinderHistoryByTokenQuery(t *testing.T) {
	query, err := queries.NewGetCylinderHistoryByTokenQuery("#0007")
	require.NoError(t, err)
	assert.Equal(t, int64(7), query.Token().SequentialNumber)
	_, byID := query.CylinderID()
	assert.False(t, byID)

	_, err = queries.NewGetCylinderHistoryByTokenQuery("   ")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewGetCylinderHistoryQuery_RequiresValidID(t *testing.T) {
	_, err := queries.NewGetCylinderHistoryQuery(kernel.UUID{})
	require.Error(t, err)

	id := kernel.NewUUID()
	query, err := queries.NewGetCylinderHistoryQuery(id)
	require.NoError(t, err)
	got, ok := query.CylinderID()
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestNewGetCustomerCylindersQuery_RequiresValidID(t *testing.T) {
	_, err := queries.NewGetCustomerCylindersQuery(kernel.UUID{})
	require.Error(t, err)

	id := kernel.NewUUID()
	query, err := queries.NewGetCustomerCylindersQuery(id)
	require.NoError(t, err)
	assert.Equal(t, id, query.CustomerID())
}

func TestNewGetStalePrintJobsQuery_RejectsNonPositiveThreshold(t *testing.T) {
	_, err := queries.NewGetStalePrintJobsQuery(0)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestHandlers_WithoutDatabase_ReturnReadModelUnavailable(t *testing.T) {
	ctx := t.Context()

	_, err := queries.NewGetFillingQueueQueryHandler(nil).Handle(ctx, queries.NewGetFillingQueueQuery())
	assert.ErrorIs(t, err, queries.ErrReadModelUnavailable)

	_, err = queries.NewSearchCustomersQueryHandler(nil).Handle(ctx, queries.NewSearchCustomersQuery(""))
	assert.ErrorIs(t, err, queries.ErrReadModelUnavailable)

	_, err = queries.NewGetDashboardStatsQueryHandler(nil).Handle(ctx, queries.NewGetDashboardStatsQuery())
	assert.ErrorIs(t, err, queries.ErrReadModelUnavailable)

	byCustomer, err := queries.NewGetCustomerCylindersQuery(kernel.NewUUID())
	require.NoError(t, err)
	_, err = queries.NewGetCustomerCylindersQueryHandler(nil).Handle(ctx, byCustomer)
	assert.ErrorIs(t, err, queries.ErrReadModelUnavailable)
}
