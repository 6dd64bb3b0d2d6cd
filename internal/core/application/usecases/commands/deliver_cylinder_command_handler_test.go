package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"refill/internal/core/application/usecases/commands"
	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/history"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/core/ports"
	"refill/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindOpenByCustomer(ctx context.Context, customerID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindOpenByCylinder(ctx context.Context, cylinderID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, cylinderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindLatestByCylinder(ctx context.Context, cylinderID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, cylinderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByCustomer(ctx context.Context, customerID kernel.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) RemoveCylinder(ctx context.Context, cylinderID kernel.UUID) error {
	args := m.Called(ctx, cylinderID)
	return args.Error(0)
}

type MockCylinderRepository struct{ mock.Mock }

func (m *MockCylinderRepository) NextSequentialNumber(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCylinderRepository) Add(ctx context.Context, c *cylinder.Cylinder) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCylinderRepository) Update(ctx context.Context, c *cylinder.Cylinder) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCylinderRepository) Get(ctx context.Context, id kernel.UUID) (*cylinder.Cylinder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cylinder.Cylinder), args.Error(1)
}

func (m *MockCylinderRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*cylinder.Cylinder, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cylinder.Cylinder), args.Error(1)
}

func (m *MockCylinderRepository) FindBySequentialNumber(ctx context.Context, n int64) (*cylinder.Cylinder, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cylinder.Cylinder), args.Error(1)
}

func (m *MockCylinderRepository) FindByLabelToken(ctx context.Context, token kernel.LabelToken) (*cylinder.Cylinder, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cylinder.Cylinder), args.Error(1)
}

func (m *MockCylinderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Append(ctx context.Context, entries ...*history.Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListByCylinder(_ context.Context, _ kernel.UUID) ([]*history.Entry, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockHistoryRepository) DeleteByCylinder(ctx context.Context, cylinderID kernel.UUID) error {
	args := m.Called(ctx, cylinderID)
	return args.Error(0)
}

type MockFulfillmentUoW struct{ mock.Mock }

func (m *MockFulfillmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFulfillmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFulfillmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockFulfillmentUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

func (m *MockFulfillmentUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockFulfillmentUoW) CylinderRepository() ports.CylinderRepository {
	args := m.Called()
	return args.Get(0).(ports.CylinderRepository)
}

func (m *MockFulfillmentUoW) HistoryRepository() ports.HistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.HistoryRepository)
}

type MockFulfillmentUoWFactory struct{ mock.Mock }

func (m *MockFulfillmentUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// pickupFixture is a ReadyForPickup order holding one Ready cylinder.
func pickupFixture(t *testing.T) (*order.Order, *cylinder.Cylinder) {
	t.Helper()
	now := time.Now().UTC()

	c, err := cylinder.RestoreCylinder(kernel.NewUUID(), 1, nil, cylinder.Ready, "", now, 1)
	require.NoError(t, err)

	orderID := kernel.NewUUID()
	ref, err := order.RestoreCylinderRef(orderID, c.ID(), cylinder.Ready)
	require.NoError(t, err)

	o, err := order.RestoreOrder(orderID, kernel.NewUUID(), order.ReadyForPickup, []*order.CylinderRef{ref}, now, nil, nil, 1)
	require.NoError(t, err)

	return o, c
}

func TestDeliverCylinderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o, c := pickupFixture(t)
	cmd, err := commands.NewDeliverCylinderCommand(o.ID(), c.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	cylinderRepo := new(MockCylinderRepository)
	historyRepo := new(MockHistoryRepository)
	uow := new(MockFulfillmentUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CylinderRepository").Return(cylinderRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		cylinderRepo.On("Get", ctx, c.ID()).Return(c, nil).Once(),
		cylinderRepo.On("GetMany", ctx, []kernel.UUID{c.ID()}).Return([]*cylinder.Cylinder{c}, nil).Once(),
		cylinderRepo.On("Update", ctx, c).Return(nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("HistoryRepository").Return(historyRepo).Once(),
		historyRepo.On("Append", ctx, mock.AnythingOfType("[]*history.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, mock.MatchedBy(func(events []kernel.DomainEvent) bool {
			return len(events) == 2 &&
				events[0].EventType() == "CylinderDelivered" &&
				events[1].EventType() == "OrderCompleted"
		})).Return().Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeliverCylinderCommandHandler(factory, publisher)
	res, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, cylinder.Delivered, res.State)
	assert.Equal(t, order.Completed, res.OrderStatus)
	assert.Equal(t, 1, res.TotalCylinders)
	assert.Equal(t, 1, res.DeliveredCylinders)
	assert.True(t, res.IsOrderComplete)

	orderRepo.AssertExpectations(t)
	cylinderRepo.AssertExpectations(t)
	historyRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestDeliverCylinderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockFulfillmentUoWFactory)
	h := commands.NewDeliverCylinderCommandHandler(factory, new(MockEventPublisher))
	_, err := h.Handle(t.Context(), commands.DeliverCylinderCommand{})
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestDeliverCylinderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewDeliverCylinderCommand(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	uow := new(MockFulfillmentUoW)
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()
	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeliverCylinderCommandHandler(factory, new(MockEventPublisher))
	_, err = h.Handle(ctx, cmd)
	require.EqualError(t, err, "begin error")
	uow.AssertNotCalled(t, "Rollback", mock.Anything)
}

func TestDeliverCylinderCommandHandler_Handle_GetOrderError(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewDeliverCylinderCommand(orderID, kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	cylinderRepo := new(MockCylinderRepository)
	uow := new(MockFulfillmentUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CylinderRepository").Return(cylinderRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("order", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeliverCylinderCommandHandler(factory, publisher)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	cylinderRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestDeliverCylinderCommandHandler_Handle_OrderNotReadyForPickup(t *testing.T) {
	ctx := t.Context()
	o, _, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	cmd, err := commands.NewDeliverCylinderCommand(o.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	cylinderRepo := new(MockCylinderRepository)
	uow := new(MockFulfillmentUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CylinderRepository").Return(cylinderRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeliverCylinderCommandHandler(factory, new(MockEventPublisher))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrOrderNotReadyForPickup)
	cylinderRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestDeliverCylinderCommandHandler_Handle_UpdateOrderError(t *testing.T) {
	ctx := t.Context()
	o, c := pickupFixture(t)
	cmd, err := commands.NewDeliverCylinderCommand(o.ID(), c.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	cylinderRepo := new(MockCylinderRepository)
	uow := new(MockFulfillmentUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CylinderRepository").Return(cylinderRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		cylinderRepo.On("Get", ctx, c.ID()).Return(c, nil).Once(),
		cylinderRepo.On("GetMany", ctx, []kernel.UUID{c.ID()}).Return([]*cylinder.Cylinder{c}, nil).Once(),
		cylinderRepo.On("Update", ctx, c).Return(nil).Once(),
		orderRepo.On("Update", ctx, o).Return(errs.NewVersionIsInvalidError("version")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeliverCylinderCommandHandler(factory, publisher)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	uow.AssertNotCalled(t, "HistoryRepository")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestDeliverCylinderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	o, c := pickupFixture(t)
	cmd, err := commands.NewDeliverCylinderCommand(o.ID(), c.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	cylinderRepo := new(MockCylinderRepository)
	historyRepo := new(MockHistoryRepository)
	uow := new(MockFulfillmentUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CylinderRepository").Return(cylinderRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		cylinderRepo.On("Get", ctx, c.ID()).Return(c, nil).Once(),
		cylinderRepo.On("GetMany", ctx, []kernel.UUID{c.ID()}).Return([]*cylinder.Cylinder{c}, nil).Once(),
		cylinderRepo.On("Update", ctx, c).Return(nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("HistoryRepository").Return(historyRepo).Once(),
		historyRepo.On("Append", ctx, mock.Anything).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeliverCylinderCommandHandler(factory, publisher)
	_, err = h.Handle(ctx, cmd)
	require.EqualError(t, err, "commit error")
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}
