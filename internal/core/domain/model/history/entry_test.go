package history_test

import (
	"testing"

	"refill/internal/core/domain/model/history"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	cylinderID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	e, err := history.NewEntry(cylinderID, history.MarkedReady, "filled", &orderID)

	require.NoError(t, err)
	require.NoError(t, e.Validate())
	assert.True(t, e.CylinderID().IsEqual(cylinderID))
	assert.Equal(t, history.MarkedReady, e.EventType())
	assert.Equal(t, "filled", e.Details())
	require.NotNil(t, e.OrderID())
	assert.True(t, e.OrderID().IsEqual(orderID))
	assert.False(t, e.Timestamp().IsZero())
}

func TestNewEntry_Invalid(t *testing.T) {
	_, err := history.NewEntry(kernel.NewUUID(), history.Unknown, "", nil)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = history.NewEntry(kernel.UUID{}, history.Received, "", nil)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestParseEventType(t *testing.T) {
	for _, et := range []history.EventType{
		history.Received, history.LabelAssigned, history.MarkedReady, history.Delivered, history.ProblemReported,
	} {
		parsed, err := history.ParseEventType(et.String())
		require.NoError(t, err)
		assert.Equal(t, et, parsed)
	}

	_, err := history.ParseEventType("Unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
