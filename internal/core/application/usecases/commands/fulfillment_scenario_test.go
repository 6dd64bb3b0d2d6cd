package commands_test

import (
	"context"
	"testing"

	"refill/internal/core/application/usecases/commands"
	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/history"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/core/domain/model/printjob"
	"refill/internal/core/ports"
	"refill/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario_PhoneNumbersCollideAfterNormalization(t *testing.T) {
	s := newShop()
	s.newCustomer(t, "Maria", "926 060 863")

	cmd, err := commands.NewCreateCustomerCommand("João", "926060863")
	require.NoError(t, err)

	_, err = s.createCustomer.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
	require.ErrorIs(t, err, errs.ErrStateIsInvalid)
	assert.Equal(t, 1, s.publisher.count("CustomerCreated"))
}

func TestScenario_UpdatePhoneRejectsNumberOfAnotherCustomer(t *testing.T) {
	s := newShop()
	s.newCustomer(t, "Maria", "926060863")
	other := s.newCustomer(t, "João", "912345678")

	cmd, err := commands.NewUpdateCustomerPhoneCommand(other.CustomerID, "926-060-863")
	require.NoError(t, err)
	_, err = s.updatePhone.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)

	cmd, err = commands.NewUpdateCustomerPhoneCommand(other.CustomerID, "912 345 678")
	require.NoError(t, err)
	res, err := s.updatePhone.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "912345678", res.Phone)
}

func TestScenario_CreateOrderReturnsExistingOpenOrder(t *testing.T) {
	s := newShop()
	c := s.newCustomer(t, "Maria", "926060863")

	first := s.openOrder(t, c.CustomerID)
	second := s.openOrder(t, c.CustomerID)

	assert.True(t, first.Created)
	assert.False(t, second.Created)
	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Equal(t, order.Open, second.Status)
	assert.Equal(t, 1, s.publisher.count("OrderCreated"))
}

func TestScenario_ScanPrefersSequentialNumberOverLabel(t *testing.T) {
	s := newShop()
	maria := s.newCustomer(t, "Maria", "926060863")
	joao := s.newCustomer(t, "João", "912345678")

	first := s.openOrder(t, maria.CustomerID)
	labelled := s.receive(t, first.OrderID, "0007")
	for range 6 {
		s.receive(t, first.OrderID, "")
	}
	require.Equal(t, int64(1), labelled.SequentialNumber)

	batch, err := commands.NewMarkCylindersReadyBatchCommand(first.OrderID)
	require.NoError(t, err)
	_, err = s.markReadyBatch.Handle(t.Context(), batch)
	require.NoError(t, err)

	second := s.openOrder(t, joao.CustomerID)
	scan, err := commands.NewScanCylinderToOrderCommand(second.OrderID, "#0007")
	require.NoError(t, err)

	res, err := s.scanCylinder.Handle(t.Context(), scan)
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.SequentialNumber)
	assert.NotEqual(t, labelled.CylinderID, res.CylinderID)
}

func TestScenario_ScanRejectsCylinderOfAnotherOpenOrder(t *testing.T) {
	s := newShop()
	maria := s.newCustomer(t, "Maria", "926060863")
	joao := s.newCustomer(t, "João", "912345678")

	first := s.openOrder(t, maria.CustomerID)
	c := s.receive(t, first.OrderID, "QR-1")
	second := s.openOrder(t, joao.CustomerID)

	scan, err := commands.NewScanCylinderToOrderCommand(second.OrderID, "qr-1")
	require.NoError(t, err)
	_, err = s.scanCylinder.Handle(t.Context(), scan)
	require.ErrorIs(t, err, commands.ErrCylinderInAnotherOpenOrder)
	require.ErrorIs(t, err, errs.ErrStateIsInvalid)

	scan, err = commands.NewScanCylinderToOrderCommand(first.OrderID, "1")
	require.NoError(t, err)
	_, err = s.scanCylinder.Handle(t.Context(), scan)
	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)

	scan, err = commands.NewScanCylinderToOrderCommand(second.OrderID, "unknown")
	require.NoError(t, err)
	_, err = s.scanCylinder.Handle(t.Context(), scan)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.NotEqual(t, kernel.UUID{}, c.CylinderID)
}

func TestScenario_TwoCylinderOrderIsPromotedOnce(t *testing.T) {
	s := newShop()
	maria := s.newCustomer(t, "Maria", "926060863")
	o := s.openOrder(t, maria.CustomerID)
	a := s.receive(t, o.OrderID, "")
	b := s.receive(t, o.OrderID, "")

	progress := s.fill(t, a.CylinderID)
	assert.Equal(t, order.Open, progress.OrderStatus)
	assert.Equal(t, 2, progress.Total)
	assert.Equal(t, 1, progress.Ready)
	assert.False(t, progress.IsOrderComplete)

	progress = s.fill(t, b.CylinderID)
	assert.Equal(t, order.ReadyForPickup, progress.OrderStatus)
	assert.Equal(t, 2, progress.Ready)
	assert.True(t, progress.IsOrderComplete)

	cmd, err := commands.NewMarkCylinderReadyCommand(b.CylinderID)
	require.NoError(t, err)
	_, err = s.markReady.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrStateIsInvalid)

	assert.Equal(t, 1, s.publisher.count("OrderBecameReadyForPickup"))
}

func TestScenario_BatchSkipsCylindersThatCannotBecomeReady(t *testing.T) {
	s := newShop()
	maria := s.newCustomer(t, "Maria", "926060863")
	o := s.openOrder(t, maria.CustomerID)
	s.receive(t, o.OrderID, "")
	s.receive(t, o.OrderID, "")
	broken := s.receive(t, o.OrderID, "")

	problem, err := commands.NewReportCylinderProblemCommand(broken.CylinderID, "Leak", "valve leaks")
	require.NoError(t, err)
	reported, err := s.reportProblem.Handle(t.Context(), problem)
	require.NoError(t, err)
	assert.Equal(t, cylinder.Problem, reported.State)

	batch, err := commands.NewMarkCylindersReadyBatchCommand(o.OrderID)
	require.NoError(t, err)
	res, err := s.markReadyBatch.Handle(t.Context(), batch)
	require.NoError(t, err)
	assert.Equal(t, 2, res.MarkedCount)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, order.Open, res.OrderStatus)
	assert.False(t, res.IsOrderComplete)
	assert.Zero(t, s.publisher.count("OrderBecameReadyForPickup"))
}

func TestScenario_BatchFailsWhenEveryCylinderIsReady(t *testing.T) {
	s := newShop()
	maria := s.newCustomer(t, "Maria", "926060863")
	o := s.openOrder(t, maria.CustomerID)
	s.receive(t, o.OrderID, "")

	batch, err := commands.NewMarkCylindersReadyBatchCommand(o.OrderID)
	require.NoError(t, err)
	res, err := s.markReadyBatch.Handle(t.Context(), batch)
	require.NoError(t, err)
	assert.True(t, res.IsOrderComplete)

	_, err = s.markReadyBatch.Handle(t.Context(), batch)
	require.ErrorIs(t, err, commands.ErrNoCylindersToMarkReady)
}

func TestScenario_LastDeliveryCompletesOrder(t *testing.T) {
	s := newShop()
	maria := s.newCustomer(t, "Maria", "926060863")
	o := s.openOrder(t, maria.CustomerID)
	a := s.receive(t, o.OrderID, "")
	b := s.receive(t, o.OrderID, "")

	_, err := s.handOver(t, o.OrderID, a.CylinderID)
	require.ErrorIs(t, err, commands.ErrOrderNotReadyForPickup)

	s.fill(t, a.CylinderID)
	s.fill(t, b.CylinderID)

	notified, err := commands.NewMarkOrderNotifiedCommand(o.OrderID)
	require.NoError(t, err)
	_, err = s.markNotified.Handle(t.Context(), notified)
	require.NoError(t, err)

	progress, err := s.handOver(t, o.OrderID, a.CylinderID)
	require.NoError(t, err)
	assert.Equal(t, order.ReadyForPickup, progress.OrderStatus)
	assert.Equal(t, 1, progress.DeliveredCylinders)
	assert.False(t, progress.IsOrderComplete)

	progress, err = s.handOver(t, o.OrderID, b.CylinderID)
	require.NoError(t, err)
	assert.Equal(t, order.Completed, progress.OrderStatus)
	assert.Equal(t, 2, progress.DeliveredCylinders)
	assert.True(t, progress.IsOrderComplete)

	_, err = s.handOver(t, o.OrderID, a.CylinderID)
	require.ErrorIs(t, err, errs.ErrStateIsInvalid)
	assert.Equal(t, 1, s.publisher.count("OrderCompleted"))
}

func TestScenario_DeliverRejectsCylinderOfAnotherOrder(t *testing.T) {
	s := newShop()
	maria := s.newCustomer(t, "Maria", "926060863")
	joao := s.newCustomer(t, "João", "912345678")
	o := s.openOrder(t, maria.CustomerID)
	a := s.receive(t, o.OrderID, "")
	s.fill(t, a.CylinderID)

	other := s.openOrder(t, joao.CustomerID)
	stranger := s.receive(t, other.OrderID, "")

	_, err := s.handOver(t, o.OrderID, stranger.CylinderID)
	require.ErrorIs(t, err, commands.ErrCylinderNotInOrder)
}

func TestScenario_DeleteCustomerRequiresNoOrders(t *testing.T) {
	s := newShop()
	maria := s.newCustomer(t, "Maria", "926060863")
	joao := s.newCustomer(t, "João", "912345678")

	o := s.openOrder(t, maria.CustomerID)
	c := s.receive(t, o.OrderID, "")
	s.fill(t, c.CylinderID)
	progress, err := s.handOver(t, o.OrderID, c.CylinderID)
	require.NoError(t, err)
	require.Equal(t, order.Completed, progress.OrderStatus)

	cmd, err := commands.NewDeleteCustomerCommand(maria.CustomerID)
	require.NoError(t, err)
	err = s.deleteCustomer.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, commands.ErrCustomerHasOrders)

	cmd, err = commands.NewDeleteCustomerCommand(joao.CustomerID)
	require.NoError(t, err)
	require.NoError(t, s.deleteCustomer.Handle(t.Context(), cmd))

	err = s.deleteCustomer.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestScenario_AssignLabel(t *testing.T) {
	s := newShop()
	maria := s.newCustomer(t, "Maria", "926060863")
	o := s.openOrder(t, maria.CustomerID)
	a := s.receive(t, o.OrderID, "QR-1")
	b := s.receive(t, o.OrderID, "")

	cmd, err := commands.NewAssignLabelCommand(b.CylinderID, "qr-1")
	require.NoError(t, err)
	_, err = s.assignLabel.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)

	cmd, err = commands.NewAssignLabelCommand(a.CylinderID, " qr-2 ")
	require.NoError(t, err)
	res, err := s.assignLabel.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "QR-2", res.LabelToken)
	assert.Equal(t, "QR-1", res.PreviousLabelToken)

	again, err := s.assignLabel.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "QR-2", again.LabelToken)
	assert.Equal(t, 2, s.publisher.count("LabelAssigned"))

	cmd, err = commands.NewAssignLabelCommand(b.CylinderID, "QR-1")
	require.NoError(t, err)
	_, err = s.assignLabel.Handle(t.Context(), cmd)
	require.NoError(t, err)
}

func TestScenario_DeleteCylinderRemovesLedgerAndMembership(t *testing.T) {
	s := newShop()
	maria := s.newCustomer(t, "Maria", "926060863")
	o := s.openOrder(t, maria.CustomerID)
	c := s.receive(t, o.OrderID, "QR-1")

	cmd, err := commands.NewDeleteCylinderCommand(c.CylinderID)
	require.NoError(t, err)
	require.NoError(t, s.deleteCylinder.Handle(t.Context(), cmd))

	ctx := t.Context()
	uow := s.factory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	_, err = uow.CylinderRepository().Get(ctx, c.CylinderID)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	entries, err := uow.HistoryRepository().ListByCylinder(ctx, c.CylinderID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	stored, err := uow.OrderRepository().Get(ctx, o.OrderID)
	require.NoError(t, err)
	assert.Empty(t, stored.Cylinders())

	token, err := kernel.NewLabelToken("QR-1")
	require.NoError(t, err)
	_, err = uow.CylinderRepository().FindByLabelToken(ctx, token)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestScenario_DeletingLastPendingCylinderPromotesOrder(t *testing.T) {
	s := newShop()
	maria := s.newCustomer(t, "Maria", "926060863")
	o := s.openOrder(t, maria.CustomerID)
	a := s.receive(t, o.OrderID, "")
	b := s.receive(t, o.OrderID, "")

	progress := s.fill(t, a.CylinderID)
	require.Equal(t, order.Open, progress.OrderStatus)

	cmd, err := commands.NewDeleteCylinderCommand(b.CylinderID)
	require.NoError(t, err)
	require.NoError(t, s.deleteCylinder.Handle(t.Context(), cmd))

	ctx := t.Context()
	uow := s.factory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	stored, err := uow.OrderRepository().Get(ctx, o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.ReadyForPickup, stored.Status())
	assert.Equal(t, []kernel.UUID{a.CylinderID}, stored.CylinderIDs())
	assert.Equal(t, 1, s.publisher.count("OrderBecameReadyForPickup"))
}

func TestScenario_DeletingOnlyCylinderKeepsOrderOpen(t *testing.T) {
	s := newShop()
	maria := s.newCustomer(t, "Maria", "926060863")
	o := s.openOrder(t, maria.CustomerID)
	c := s.receive(t, o.OrderID, "")

	cmd, err := commands.NewDeleteCylinderCommand(c.CylinderID)
	require.NoError(t, err)
	require.NoError(t, s.deleteCylinder.Handle(t.Context(), cmd))

	ctx := t.Context()
	uow := s.factory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	stored, err := uow.OrderRepository().Get(ctx, o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.Open, stored.Status())
	assert.Zero(t, s.publisher.count("OrderBecameReadyForPickup"))
}

func TestScenario_ProblemHistoryCarriesOpenOrder(t *testing.T) {
	s := newShop()
	maria := s.newCustomer(t, "Maria", "926060863")
	o := s.openOrder(t, maria.CustomerID)
	c := s.receive(t, o.OrderID, "")

	problem, err := commands.NewReportCylinderProblemCommand(c.CylinderID, "Leak", "valve leaks")
	require.NoError(t, err)
	_, err = s.reportProblem.Handle(t.Context(), problem)
	require.NoError(t, err)

	ctx := t.Context()
	uow := s.factory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	entries, err := uow.HistoryRepository().ListByCylinder(ctx, c.CylinderID)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, history.ProblemReported, entries[0].EventType())
	require.NotNil(t, entries[0].OrderID())
	assert.Equal(t, o.OrderID, *entries[0].OrderID())
}

func TestScenario_ReceiveWritesHistory(t *testing.T) {
	s := newShop()
	maria := s.newCustomer(t, "Maria", "926060863")
	o := s.openOrder(t, maria.CustomerID)
	c := s.receive(t, o.OrderID, "qr-9")
	assert.Equal(t, "QR-9", c.LabelToken)
	assert.Equal(t, cylinder.Received, c.State)

	ctx := t.Context()
	uow := s.factory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	entries, err := uow.HistoryRepository().ListByCylinder(ctx, c.CylinderID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Label assigned: QR-9", entries[0].Details())
	assert.Equal(t, "Cylinder #1 received", entries[1].Details())
}

func TestScenario_CancelledContextWritesNothing(t *testing.T) {
	s := newShop()
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	cmd, err := commands.NewCreateCustomerCommand("Maria", "926060863")
	require.NoError(t, err)
	_, err = s.createCustomer.Handle(ctx, cmd)
	require.ErrorIs(t, err, context.Canceled)

	s.newCustomer(t, "Maria", "926060863")
}

func TestScenario_DuplicatePrintedAckIsNoOp(t *testing.T) {
	s := newShop()
	dispatcher := &recordingDispatcher{}
	create := s.printJobs(dispatcher)

	cmd, err := commands.NewCreatePrintJobCommand(kernel.NewUUID(), 12, "default", "Maria", "926060863")
	require.NoError(t, err)
	job, err := create.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Equal(t, printjob.Dispatched, job.Status)

	require.Len(t, dispatcher.requests, 1)
	assert.Equal(t, job.PrintJobID, dispatcher.requests[0].PrintJobID)
	assert.Equal(t, 12, dispatcher.requests[0].Quantity)
	assert.Equal(t, "Maria", dispatcher.requests[0].CustomerName)

	ack, err := commands.NewAckPrintJobPrintedCommand(job.PrintJobID)
	require.NoError(t, err)

	printed, err := s.ackPrinted.Handle(t.Context(), ack)
	require.NoError(t, err)
	assert.Equal(t, printjob.Printed, printed.Status)
	require.NotNil(t, printed.CompletedAt)

	again, err := s.ackPrinted.Handle(t.Context(), ack)
	require.NoError(t, err)
	assert.Equal(t, printed, again)
	assert.Equal(t, 1, s.publisher.count("PrintJobPrinted"))

	failed, err := commands.NewAckPrintJobFailedCommand(job.PrintJobID, "paper jam")
	require.NoError(t, err)
	_, err = s.ackFailed.Handle(t.Context(), failed)
	require.ErrorIs(t, err, errs.ErrStateIsInvalid)
}

func TestScenario_FailedAckRecordsMessage(t *testing.T) {
	s := newShop()
	create := s.printJobs(&recordingDispatcher{})

	cmd, err := commands.NewCreatePrintJobCommand(kernel.NewUUID(), 1, "", "", "")
	require.NoError(t, err)
	job, err := create.Handle(t.Context(), cmd)
	require.NoError(t, err)

	failed, err := commands.NewAckPrintJobFailedCommand(job.PrintJobID, " paper jam ")
	require.NoError(t, err)
	res, err := s.ackFailed.Handle(t.Context(), failed)
	require.NoError(t, err)
	assert.Equal(t, printjob.Failed, res.Status)
	assert.Equal(t, "paper jam", res.ErrorMessage)

	ack, err := commands.NewAckPrintJobPrintedCommand(job.PrintJobID)
	require.NoError(t, err)
	_, err = s.ackPrinted.Handle(t.Context(), ack)
	require.ErrorIs(t, err, errs.ErrStateIsInvalid)
}

// ackingDispatcher acknowledges every job before returning.
type ackingDispatcher struct {
	t       *testing.T
	handler commands.AckPrintJobPrintedCommandHandler
}

func (d ackingDispatcher) Dispatch(ctx context.Context, request ports.PrintRequest) {
	cmd, err := commands.NewAckPrintJobPrintedCommand(request.PrintJobID)
	require.NoError(d.t, err)
	_, err = d.handler.Handle(ctx, cmd)
	require.NoError(d.t, err)
}

func TestScenario_SynchronousDispatcherReturnsPrintedSnapshot(t *testing.T) {
	s := newShop()
	create := s.printJobs(ackingDispatcher{t: t, handler: s.ackPrinted})

	cmd, err := commands.NewCreatePrintJobCommand(kernel.NewUUID(), 3, "", "", "")
	require.NoError(t, err)
	job, err := create.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Equal(t, printjob.Printed, job.Status)
	assert.Equal(t, 1, s.publisher.count("PrintJobCreated"))
}
