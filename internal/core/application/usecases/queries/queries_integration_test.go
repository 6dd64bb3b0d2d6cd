package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "refill/internal/adapters/out/postgres"
	"refill/internal/adapters/out/postgres/pgtest"
	"refill/internal/core/application/usecases/commands"
	"refill/internal/core/application/usecases/queries"
	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/history"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/core/domain/model/printjob"
	"refill/internal/core/ports"
	"refill/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type uowFunc func() commands.UoW

func (f uowFunc) Create() commands.UoW { return f() }

type customerUoWFunc func() commands.CustomerUoW

func (f customerUoWFunc) Create() commands.CustomerUoW { return f() }

type orderUoWFunc func() commands.OrderUoW

func (f orderUoWFunc) Create() commands.OrderUoW { return f() }

type printJobUoWFunc func() commands.PrintJobUoW

func (f printJobUoWFunc) Create() commands.PrintJobUoW { return f() }

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, ...kernel.DomainEvent) {}

// silentDispatcher leaves every job Dispatched.
type silentDispatcher struct{}

func (silentDispatcher) Dispatch(context.Context, ports.PrintRequest) {}

// ReadModelIntegrationTestSuite drives the command handlers against
// PostgreSQL and checks what the query handlers report.
type ReadModelIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database

	createCustomer commands.CreateCustomerCommandHandler
	createOrder    commands.CreateOrderCommandHandler
	receive        commands.ReceiveCylinderCommandHandler
	markReady      commands.MarkCylinderReadyCommandHandler
	deliver        commands.DeliverCylinderCommandHandler
	markNotified   commands.MarkOrderNotifiedCommandHandler
	createPrintJob commands.CreatePrintJobCommandHandler
}

func (suite *ReadModelIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database

	factory := postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
	uows := uowFunc(func() commands.UoW { return factory.Create() })
	publisher := nopPublisher{}

	suite.createCustomer = commands.NewCreateCustomerCommandHandler(
		customerUoWFunc(func() commands.CustomerUoW { return factory.Create() }), publisher)
	suite.createOrder = commands.NewCreateOrderCommandHandler(uows, publisher)
	suite.receive = commands.NewReceiveCylinderCommandHandler(uows, publisher)
	suite.markReady = commands.NewMarkCylinderReadyCommandHandler(uows, publisher)
	suite.deliver = commands.NewDeliverCylinderCommandHandler(uows, publisher)
	suite.markNotified = commands.NewMarkOrderNotifiedCommandHandler(
		orderUoWFunc(func() commands.OrderUoW { return factory.Create() }))
	suite.createPrintJob = commands.NewCreatePrintJobCommandHandler(
		printJobUoWFunc(func() commands.PrintJobUoW { return factory.Create() }), silentDispatcher{}, publisher)
}

func (suite *ReadModelIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *ReadModelIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *ReadModelIntegrationTestSuite) TestGetFillingQueue_ReceivedCylindersWithOrderProgress() {
	ctx := context.Background()
	maria := suite.customer("Maria", "926 060 863")
	mariaOrder := suite.order(maria)
	first := suite.cylinder(mariaOrder, "")
	second := suite.cylinder(mariaOrder, "qr-2")
	suite.fill(first)

	joao := suite.customer("João", "912 345 678")
	joaoCylinder := suite.cylinder(suite.order(joao), "")

	queue, err := queries.NewGetFillingQueueQueryHandler(suite.database.DB).
		Handle(ctx, queries.NewGetFillingQueueQuery())
	suite.Require().NoError(err)
	suite.Require().Len(queue, 2)

	suite.Equal(second, queue[0].CylinderID)
	suite.Equal("QR-2", queue[0].LabelToken)
	suite.Equal(cylinder.Received, queue[0].State)
	suite.Equal(mariaOrder, queue[0].OrderID)
	suite.Equal("Maria", queue[0].CustomerName)
	suite.Equal("926060863", queue[0].CustomerPhone)
	suite.Equal(2, queue[0].TotalCylindersInOrder)
	suite.Equal(1, queue[0].ReadyCylindersInOrder)

	suite.Equal(joaoCylinder, queue[1].CylinderID)
	suite.Equal(0, queue[1].ReadyCylindersInOrder)
}

func (suite *ReadModelIntegrationTestSuite) TestGetReadyForPickup_SearchAndNotification() {
	ctx := context.Background()
	maria := suite.customer("Maria Silva", "926 060 863")
	orderID := suite.order(maria)
	suite.fill(suite.cylinder(orderID, ""))

	joao := suite.customer("João", "912 345 678")
	suite.cylinder(suite.order(joao), "")

	handler := queries.NewGetReadyForPickupQueryHandler(suite.database.DB)

	all, err := handler.Handle(ctx, queries.NewGetReadyForPickupQuery(""))
	suite.Require().NoError(err)
	suite.Require().Len(all, 1)
	suite.Equal(orderID, all[0].OrderID)
	suite.Equal(order.ReadyForPickup, all[0].Status)
	suite.True(all[0].NeedsNotification)
	suite.Equal(1, all[0].TotalCylinders)
	suite.Equal(0, all[0].DeliveredCylinders)
	suite.Require().Len(all[0].Cylinders, 1)
	suite.Equal(cylinder.Ready, all[0].Cylinders[0].State)

	byName, err := handler.Handle(ctx, queries.NewGetReadyForPickupQuery("silva"))
	suite.Require().NoError(err)
	suite.Len(byName, 1)

	byPhone, err := handler.Handle(ctx, queries.NewGetReadyForPickupQuery("060 863"))
	suite.Require().NoError(err)
	suite.Len(byPhone, 1)

	none, err := handler.Handle(ctx, queries.NewGetReadyForPickupQuery("joão"))
	suite.Require().NoError(err)
	suite.Empty(none)

	cmd, err := commands.NewMarkOrderNotifiedCommand(orderID)
	suite.Require().NoError(err)
	_, err = suite.markNotified.Handle(ctx, cmd)
	suite.Require().NoError(err)

	notified, err := handler.Handle(ctx, queries.NewGetReadyForPickupQuery(""))
	suite.Require().NoError(err)
	suite.Require().Len(notified, 1)
	suite.False(notified[0].NeedsNotification)
	suite.NotNil(notified[0].NotifiedAt)
}

func (suite *ReadModelIntegrationTestSuite) TestGetCylinderHistory_ByIDAndToken() {
	ctx := context.Background()
	maria := suite.customer("Maria", "926 060 863")
	orderID := suite.order(maria)
	cylinderID := suite.cylinder(orderID, "0001")
	suite.fill(cylinderID)

	handler := queries.NewGetCylinderHistoryQueryHandler(suite.database.DB)

	byID, err := queries.NewGetCylinderHistoryQuery(cylinderID)
	suite.Require().NoError(err)
	details, err := handler.Handle(ctx, byID)
	suite.Require().NoError(err)

	suite.Equal(int64(1), details.SequentialNumber)
	suite.Equal(cylinder.Ready, details.State)
	suite.Require().NotNil(details.CurrentOrder)
	suite.Equal(orderID, details.CurrentOrder.OrderID)
	suite.Equal(order.ReadyForPickup, details.CurrentOrder.Status)
	suite.Equal("Maria", details.CurrentOrder.CustomerName)

	suite.Require().Len(details.History, 3)
	suite.Equal(history.MarkedReady, details.History[0].EventType)
	suite.Equal(history.Received, details.History[2].EventType)
	suite.Require().NotNil(details.History[2].OrderID)
	suite.Equal(orderID, *details.History[2].OrderID)

	byToken, err := queries.NewGetCylinderHistoryByTokenQuery("#0001")
	suite.Require().NoError(err)
	viaToken, err := handler.Handle(ctx, byToken)
	suite.Require().NoError(err)
	suite.Equal(cylinderID, viaToken.CylinderID)

	unknown, err := queries.NewGetCylinderHistoryByTokenQuery("nope")
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, unknown)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ReadModelIntegrationTestSuite) TestGetCustomerCylinders_AcrossOrders() {
	ctx := context.Background()
	maria := suite.customer("Maria", "926 060 863")
	completed := suite.order(maria)
	returned := suite.cylinder(completed, "")
	suite.fill(returned)
	deliver, err := commands.NewDeliverCylinderCommand(completed, returned)
	suite.Require().NoError(err)
	_, err = suite.deliver.Handle(ctx, deliver)
	suite.Require().NoError(err)

	open := suite.order(maria)
	suite.Require().NotEqual(completed, open)
	waiting := suite.cylinder(open, "qr-5")

	joao := suite.customer("João", "912 345 678")
	suite.cylinder(suite.order(joao), "")

	handler := queries.NewGetCustomerCylindersQueryHandler(suite.database.DB)

	query, err := queries.NewGetCustomerCylindersQuery(maria)
	suite.Require().NoError(err)
	resp, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(maria, resp.CustomerID)
	suite.Equal("Maria", resp.Name)
	suite.Equal("926060863", resp.Phone)
	suite.Require().Len(resp.Cylinders, 2)

	newest := resp.Cylinders[0]
	suite.Equal(open, newest.OrderID)
	suite.Equal(order.Open, newest.OrderStatus)
	suite.Equal(waiting, newest.CylinderID)
	suite.Equal(int64(2), newest.SequentialNumber)
	suite.Equal("QR-5", newest.LabelToken)
	suite.Equal(cylinder.Received, newest.State)
	suite.False(newest.CreatedAt.IsZero())
	suite.Require().Len(newest.History, 2)
	suite.Equal(history.LabelAssigned, newest.History[0].EventType)
	suite.Equal(history.Received, newest.History[1].EventType)

	oldest := resp.Cylinders[1]
	suite.Equal(completed, oldest.OrderID)
	suite.Equal(order.Completed, oldest.OrderStatus)
	suite.Equal(returned, oldest.CylinderID)
	suite.Equal(cylinder.Delivered, oldest.State)
	suite.Require().Len(oldest.History, 3)
	suite.Equal(history.Delivered, oldest.History[0].EventType)
	suite.Equal(history.MarkedReady, oldest.History[1].EventType)
	suite.Equal(history.Received, oldest.History[2].EventType)
	suite.Require().NotNil(oldest.History[0].OrderID)
	suite.Equal(completed, *oldest.History[0].OrderID)

	newcomer := suite.customer("Ana", "934 000 111")
	empty, err := queries.NewGetCustomerCylindersQuery(newcomer)
	suite.Require().NoError(err)
	none, err := handler.Handle(ctx, empty)
	suite.Require().NoError(err)
	suite.Equal("Ana", none.Name)
	suite.Empty(none.Cylinders)

	missing, err := queries.NewGetCustomerCylindersQuery(kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, missing)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ReadModelIntegrationTestSuite) TestSearchCustomers_CountsOrders() {
	ctx := context.Background()
	maria := suite.customer("Maria", "926 060 863")
	suite.order(maria)
	suite.customer("Mariana", "912 345 678")
	suite.customer("João", "934 000 111")

	handler := queries.NewSearchCustomersQueryHandler(suite.database.DB)

	found, err := handler.Handle(ctx, queries.NewSearchCustomersQuery("MARIA"))
	suite.Require().NoError(err)
	suite.Require().Len(found, 2)
	suite.Equal("Maria", found[0].Name)
	suite.Equal(1, found[0].OpenOrders)
	suite.Equal(1, found[0].TotalOrders)
	suite.Equal("Mariana", found[1].Name)
	suite.Equal(0, found[1].TotalOrders)

	byPhone, err := handler.Handle(ctx, queries.NewSearchCustomersQuery("934"))
	suite.Require().NoError(err)
	suite.Require().Len(byPhone, 1)
	suite.Equal("João", byPhone[0].Name)

	all, err := handler.Handle(ctx, queries.NewSearchCustomersQuery(""))
	suite.Require().NoError(err)
	suite.Len(all, 3)
}

func (suite *ReadModelIntegrationTestSuite) TestPrintJobQueries() {
	ctx := context.Background()
	cmd, err := commands.NewCreatePrintJobCommand(kernel.NewUUID(), 4, "a4-grid", "", "")
	suite.Require().NoError(err)
	job, err := suite.createPrintJob.Handle(ctx, cmd)
	suite.Require().NoError(err)
	suite.Require().Equal(printjob.Dispatched, job.Status)

	query, err := queries.NewGetPrintJobQuery(job.PrintJobID)
	suite.Require().NoError(err)
	snapshot, err := queries.NewGetPrintJobQueryHandler(suite.database.DB).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(4, snapshot.Quantity)
	suite.Equal("a4-grid", snapshot.TemplateID)
	suite.Equal(printjob.Dispatched, snapshot.Status)
	suite.NotNil(snapshot.DispatchedAt)

	missing, err := queries.NewGetPrintJobQuery(kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = queries.NewGetPrintJobQueryHandler(suite.database.DB).Handle(ctx, missing)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	time.Sleep(5 * time.Millisecond)
	staleHandler := queries.NewGetStalePrintJobsQueryHandler(suite.database.DB)

	recent, err := queries.NewGetStalePrintJobsQuery(time.Millisecond)
	suite.Require().NoError(err)
	stale, err := staleHandler.Handle(ctx, recent)
	suite.Require().NoError(err)
	suite.Require().Len(stale, 1)
	suite.Equal(job.PrintJobID, stale[0].PrintJobID)
	suite.True(stale[0].Age > 0)

	hour, err := queries.NewGetStalePrintJobsQuery(time.Hour)
	suite.Require().NoError(err)
	stale, err = staleHandler.Handle(ctx, hour)
	suite.Require().NoError(err)
	suite.Empty(stale)
}

func (suite *ReadModelIntegrationTestSuite) TestGetDashboardStats() {
	ctx := context.Background()
	maria := suite.customer("Maria", "926 060 863")
	ready := suite.order(maria)
	suite.fill(suite.cylinder(ready, ""))

	joao := suite.customer("João", "912 345 678")
	suite.cylinder(suite.order(joao), "")

	stats, err := queries.NewGetDashboardStatsQueryHandler(suite.database.DB).
		Handle(ctx, queries.NewGetDashboardStatsQuery())
	suite.Require().NoError(err)

	suite.Equal(1, stats.OrdersOpen)
	suite.Equal(1, stats.OrdersReadyForPickup)
	suite.Equal(1, stats.OrdersAwaitingNotification)
	suite.Equal(0, stats.OrdersCompletedToday)
	suite.Equal(1, stats.CylindersReceived)
	suite.Equal(1, stats.CylindersReady)
	suite.Equal(0, stats.CylindersWithProblem)
	suite.Equal(1, stats.CylindersFilledToday)
	suite.Equal(1, stats.CylindersFilledThisWeek)
	suite.Equal(2, stats.TotalCustomers)
}

func (suite *ReadModelIntegrationTestSuite) customer(name, phone string) kernel.UUID {
	cmd, err := commands.NewCreateCustomerCommand(name, phone)
	suite.Require().NoError(err)
	res, err := suite.createCustomer.Handle(context.Background(), cmd)
	suite.Require().NoError(err)
	return res.CustomerID
}

func (suite *ReadModelIntegrationTestSuite) order(customerID kernel.UUID) kernel.UUID {
	cmd, err := commands.NewCreateOrderCommand(customerID)
	suite.Require().NoError(err)
	res, err := suite.createOrder.Handle(context.Background(), cmd)
	suite.Require().NoError(err)
	return res.OrderID
}

func (suite *ReadModelIntegrationTestSuite) cylinder(orderID kernel.UUID, label string) kernel.UUID {
	cmd, err := commands.NewReceiveCylinderCommand(orderID, label)
	suite.Require().NoError(err)
	res, err := suite.receive.Handle(context.Background(), cmd)
	suite.Require().NoError(err)
	return res.CylinderID
}

func (suite *ReadModelIntegrationTestSuite) fill(cylinderID kernel.UUID) {
	cmd, err := commands.NewMarkCylinderReadyCommand(cylinderID)
	suite.Require().NoError(err)
	_, err = suite.markReady.Handle(context.Background(), cmd)
	suite.Require().NoError(err)
}

func TestReadModelIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ReadModelIntegrationTestSuite))
}
