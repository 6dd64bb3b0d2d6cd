package commands_test

import (
	"context"
	"sync"
	"testing"

	"refill/internal/adapters/out/memory"
	"refill/internal/core/application/usecases/commands"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type uowFunc func() commands.UoW

func (f uowFunc) Create() commands.UoW { return f() }

type customerUoWFunc func() commands.CustomerUoW

func (f customerUoWFunc) Create() commands.CustomerUoW { return f() }

type orderUoWFunc func() commands.OrderUoW

func (f orderUoWFunc) Create() commands.OrderUoW { return f() }

type printJobUoWFunc func() commands.PrintJobUoW

func (f printJobUoWFunc) Create() commands.PrintJobUoW { return f() }

// recordingPublisher keeps every published event in order.
type recordingPublisher struct {
	mu     sync.Mutex
	events []kernel.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...kernel.DomainEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
}

func (p *recordingPublisher) count(eventType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, e := range p.events {
		if e.EventType() == eventType {
			n++
		}
	}
	return n
}

// recordingDispatcher accepts every request and never acknowledges.
type recordingDispatcher struct {
	requests []ports.PrintRequest
}

func (d *recordingDispatcher) Dispatch(_ context.Context, request ports.PrintRequest) {
	d.requests = append(d.requests, request)
}

// shop wires every command handler to one in-memory store.
type shop struct {
	factory   *memory.UnitOfWorkFactory
	publisher *recordingPublisher

	createCustomer  commands.CreateCustomerCommandHandler
	updatePhone     commands.UpdateCustomerPhoneCommandHandler
	deleteCustomer  commands.DeleteCustomerCommandHandler
	createOrder     commands.CreateOrderCommandHandler
	receiveCylinder commands.ReceiveCylinderCommandHandler
	scanCylinder    commands.ScanCylinderToOrderCommandHandler
	markReady       commands.MarkCylinderReadyCommandHandler
	markReadyBatch  commands.MarkCylindersReadyBatchCommandHandler
	reportProblem   commands.ReportCylinderProblemCommandHandler
	assignLabel     commands.AssignLabelCommandHandler
	deliver         commands.DeliverCylinderCommandHandler
	markNotified    commands.MarkOrderNotifiedCommandHandler
	deleteCylinder  commands.DeleteCylinderCommandHandler
	ackPrinted      commands.AckPrintJobPrintedCommandHandler
	ackFailed       commands.AckPrintJobFailedCommandHandler
}

func newShop() *shop {
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
	publisher := &recordingPublisher{}

	uows := uowFunc(func() commands.UoW { return factory.Create() })
	customerUoWs := customerUoWFunc(func() commands.CustomerUoW { return factory.Create() })
	orderUoWs := orderUoWFunc(func() commands.OrderUoW { return factory.Create() })
	printJobUoWs := printJobUoWFunc(func() commands.PrintJobUoW { return factory.Create() })

	return &shop{
		factory:         factory,
		publisher:       publisher,
		createCustomer:  commands.NewCreateCustomerCommandHandler(customerUoWs, publisher),
		updatePhone:     commands.NewUpdateCustomerPhoneCommandHandler(customerUoWs),
		deleteCustomer:  commands.NewDeleteCustomerCommandHandler(customerUoWs),
		createOrder:     commands.NewCreateOrderCommandHandler(uows, publisher),
		receiveCylinder: commands.NewReceiveCylinderCommandHandler(uows, publisher),
		scanCylinder:    commands.NewScanCylinderToOrderCommandHandler(uows),
		markReady:       commands.NewMarkCylinderReadyCommandHandler(uows, publisher),
		markReadyBatch:  commands.NewMarkCylindersReadyBatchCommandHandler(uows, publisher),
		reportProblem:   commands.NewReportCylinderProblemCommandHandler(uows),
		assignLabel:     commands.NewAssignLabelCommandHandler(uows, publisher),
		deliver:         commands.NewDeliverCylinderCommandHandler(uows, publisher),
		markNotified:    commands.NewMarkOrderNotifiedCommandHandler(orderUoWs),
		deleteCylinder:  commands.NewDeleteCylinderCommandHandler(uows, publisher),
		ackPrinted:      commands.NewAckPrintJobPrintedCommandHandler(printJobUoWs, publisher),
		ackFailed:       commands.NewAckPrintJobFailedCommandHandler(printJobUoWs, publisher),
	}
}

func (s *shop) printJobs(dispatcher ports.PrintJobDispatcher) commands.CreatePrintJobCommandHandler {
	factory := printJobUoWFunc(func() commands.PrintJobUoW { return s.factory.Create() })
	return commands.NewCreatePrintJobCommandHandler(factory, dispatcher, s.publisher)
}

func (s *shop) newCustomer(t *testing.T, name, phone string) commands.CustomerResult {
	t.Helper()
	cmd, err := commands.NewCreateCustomerCommand(name, phone)
	require.NoError(t, err)
	res, err := s.createCustomer.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return res
}

func (s *shop) openOrder(t *testing.T, customerID kernel.UUID) commands.OrderResult {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(customerID)
	require.NoError(t, err)
	res, err := s.createOrder.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return res
}

func (s *shop) receive(t *testing.T, orderID kernel.UUID, label string) commands.CylinderResult {
	t.Helper()
	cmd, err := commands.NewReceiveCylinderCommand(orderID, label)
	require.NoError(t, err)
	res, err := s.receiveCylinder.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return res
}

func (s *shop) fill(t *testing.T, cylinderID kernel.UUID) commands.ReadyProgress {
	t.Helper()
	cmd, err := commands.NewMarkCylinderReadyCommand(cylinderID)
	require.NoError(t, err)
	res, err := s.markReady.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return res
}

func (s *shop) handOver(
	t *testing.T,
	orderID, cylinderID kernel.UUID,
) (commands.DeliveryProgress, error) {
	t.Helper()
	cmd, err := commands.NewDeliverCylinderCommand(orderID, cylinderID)
	require.NoError(t, err)
	return s.deliver.Handle(t.Context(), cmd)
}

// MockEventPublisher is shared by the handler tests that use mocked units of work.
type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) {
	m.Called(ctx, events)
}
