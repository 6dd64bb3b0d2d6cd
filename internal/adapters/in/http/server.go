package http

import (
	"log/slog"
	"net/http"

	"refill/internal/adapters/out/printing"
	"refill/internal/core/application/usecases/commands"
	"refill/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Handlers groups the use cases the HTTP adapter exposes.
type Handlers struct {
	// Command handlers
	CreateCustomer      commands.CreateCustomerCommandHandler
	UpdateCustomerPhone commands.UpdateCustomerPhoneCommandHandler
	UpdateCustomerName  commands.UpdateCustomerNameCommandHandler
	DeleteCustomer      commands.DeleteCustomerCommandHandler
	CreateOrder         commands.CreateOrderCommandHandler
	ReceiveCylinder     commands.ReceiveCylinderCommandHandler
	ScanCylinder        commands.ScanCylinderToOrderCommandHandler
	MarkCylinderReady   commands.MarkCylinderReadyCommandHandler
	MarkOrderReady      commands.MarkCylindersReadyBatchCommandHandler
	DeliverCylinder     commands.DeliverCylinderCommandHandler
	MarkOrderNotified   commands.MarkOrderNotifiedCommandHandler
	ReportProblem       commands.ReportCylinderProblemCommandHandler
	AssignLabel         commands.AssignLabelCommandHandler
	DeleteCylinder      commands.DeleteCylinderCommandHandler
	CreatePrintJob      commands.CreatePrintJobCommandHandler
	AckPrinted          commands.AckPrintJobPrintedCommandHandler
	AckFailed           commands.AckPrintJobFailedCommandHandler

	// Query handlers
	SearchCustomers      queries.SearchCustomersQueryHandler
	GetCustomerCylinders queries.GetCustomerCylindersQueryHandler
	GetReadyForPickup    queries.GetReadyForPickupQueryHandler
	GetFillingQueue      queries.GetFillingQueueQueryHandler
	GetCylinder          queries.GetCylinderHistoryQueryHandler
	GetPrintJob          queries.GetPrintJobQueryHandler
	GetDashboard         queries.GetDashboardStatsQueryHandler
}

// PrintGateway is implemented by printing.Hub.
type PrintGateway interface {
	Subscribe() *printing.Subscription
}

// Server implements ServerInterface on top of the command and query handlers.
type Server struct {
	h       Handlers
	gateway PrintGateway
	logger  *slog.Logger
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates the HTTP server. gateway may be nil when print jobs are
// simulated; the event stream then answers 404.
func NewServer(h Handlers, gateway PrintGateway, logger *slog.Logger) *Server {
	return &Server{
		h:       h,
		gateway: gateway,
		logger:  logger.With("component", "http"),
	}
}

// SearchCustomers handles GET /api/v1/customers.
func (s *Server) SearchCustomers(ctx echo.Context, params SearchParams) error {
	found, err := s.h.SearchCustomers.Handle(ctx.Request().Context(), queries.NewSearchCustomersQuery(deref(params.Search)))
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]CustomerSummary, len(found))
	for i, c := range found {
		response[i] = CustomerSummary{
			ID:          c.CustomerID.Bytes(),
			Name:        c.Name,
			Phone:       c.Phone,
			OpenOrders:  c.OpenOrders,
			TotalOrders: c.TotalOrders,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateCustomer handles POST /api/v1/customers.
func (s *Server) CreateCustomer(ctx echo.Context) error {
	var body NewCustomer
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateCustomerCommand(body.Name, body.Phone)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.CreateCustomer.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, customerResponse(result))
}

// DeleteCustomer handles DELETE /api/v1/customers/{id}.
func (s *Server) DeleteCustomer(ctx echo.Context, id openapi_types.UUID) error {
	customerID, err := toKernelUUID(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeleteCustomerCommand(customerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.h.DeleteCustomer.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateCustomerPhone handles PATCH /api/v1/customers/{id}/phone.
func (s *Server) UpdateCustomerPhone(ctx echo.Context, id openapi_types.UUID) error {
	var body CustomerPhoneUpdate
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := toKernelUUID(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateCustomerPhoneCommand(customerID, body.Phone)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.UpdateCustomerPhone.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, customerResponse(result))
}

// UpdateCustomerName handles PATCH /api/v1/customers/{id}/name.
func (s *Server) UpdateCustomerName(ctx echo.Context, id openapi_types.UUID) error {
	var body CustomerNameUpdate
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := toKernelUUID(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateCustomerNameCommand(customerID, body.Name)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.UpdateCustomerName.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, customerResponse(result))
}

// GetCustomerCylinders handles GET /api/v1/customers/{id}/cylinders.
func (s *Server) GetCustomerCylinders(ctx echo.Context, id openapi_types.UUID) error {
	customerID, err := toKernelUUID(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetCustomerCylindersQuery(customerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	found, err := s.h.GetCustomerCylinders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, customerCylinders(found))
}

// CreateOrder handles POST /api/v1/orders. An existing Open order of the
// customer is returned with 200 instead of 201.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := toKernelUUID(body.CustomerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(customerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	return ctx.JSON(status, orderResponse(result))
}

// GetReadyForPickup handles GET /api/v1/orders/ready-for-pickup.
func (s *Server) GetReadyForPickup(ctx echo.Context, params SearchParams) error {
	orders, err := s.h.GetReadyForPickup.Handle(
		ctx.Request().Context(),
		queries.NewGetReadyForPickupQuery(deref(params.Search)),
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]PickupOrder, len(orders))
	for i, o := range orders {
		response[i] = pickupOrder(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ReceiveCylinder handles POST /api/v1/orders/{id}/cylinders.
func (s *Server) ReceiveCylinder(ctx echo.Context, id openapi_types.UUID) error {
	var body NewCylinder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := toKernelUUID(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewReceiveCylinderCommand(orderID, body.LabelToken)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.ReceiveCylinder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, cylinderResponse(result))
}

// ScanCylinderToOrder handles POST /api/v1/orders/{id}/scan.
func (s *Server) ScanCylinderToOrder(ctx echo.Context, id openapi_types.UUID) error {
	var body ScanRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := toKernelUUID(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewScanCylinderToOrderCommand(orderID, body.Token)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.ScanCylinder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, cylinderResponse(result))
}

// MarkOrderCylindersReady handles POST /api/v1/orders/{id}/mark-ready.
func (s *Server) MarkOrderCylindersReady(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := toKernelUUID(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewMarkCylindersReadyBatchCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.MarkOrderReady.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, BatchReady{
		OrderID:         result.OrderID.Bytes(),
		OrderStatus:     result.OrderStatus.String(),
		MarkedCount:     result.MarkedCount,
		Total:           result.Total,
		IsOrderComplete: result.IsOrderComplete,
	})
}

// DeliverCylinder handles POST /api/v1/orders/{id}/cylinders/{cylinderId}/deliver.
func (s *Server) DeliverCylinder(ctx echo.Context, id openapi_types.UUID, cylinderID openapi_types.UUID) error {
	orderID, err := toKernelUUID(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cylID, err := toKernelUUID(cylinderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeliverCylinderCommand(orderID, cylID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.DeliverCylinder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DeliveryProgress{
		CylinderID:         result.CylinderID.Bytes(),
		State:              result.State.String(),
		OrderID:            result.OrderID.Bytes(),
		OrderStatus:        result.OrderStatus.String(),
		TotalCylinders:     result.TotalCylinders,
		DeliveredCylinders: result.DeliveredCylinders,
		IsOrderComplete:    result.IsOrderComplete,
	})
}

// MarkOrderNotified handles POST /api/v1/orders/{id}/notified.
func (s *Server) MarkOrderNotified(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := toKernelUUID(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewMarkOrderNotifiedCommand(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.MarkOrderNotified.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Notified{OrderID: result.OrderID.Bytes(), NotifiedAt: result.NotifiedAt})
}

// GetFillingQueue handles GET /api/v1/cylinders/filling-queue.
func (s *Server) GetFillingQueue(ctx echo.Context) error {
	queue, err := s.h.GetFillingQueue.Handle(ctx.Request().Context(), queries.NewGetFillingQueueQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]FillingQueueItem, len(queue))
	for i, item := range queue {
		response[i] = FillingQueueItem{
			CylinderID:            item.CylinderID.Bytes(),
			SequentialNumber:      item.SequentialNumber,
			LabelToken:            item.LabelToken,
			State:                 item.State.String(),
			ReceivedAt:            item.ReceivedAt,
			OrderID:               item.OrderID.Bytes(),
			CustomerName:          item.CustomerName,
			CustomerPhone:         item.CustomerPhone,
			TotalCylindersInOrder: item.TotalCylindersInOrder,
			ReadyCylindersInOrder: item.ReadyCylindersInOrder,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCylinderByToken handles GET /api/v1/cylinders/scan/{token}.
func (s *Server) GetCylinderByToken(ctx echo.Context, token string) error {
	query, err := queries.NewGetCylinderHistoryByTokenQuery(token)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.cylinderDetails(ctx, query)
}

// GetCylinderHistory handles GET /api/v1/cylinders/{id}/history.
func (s *Server) GetCylinderHistory(ctx echo.Context, id openapi_types.UUID) error {
	cylinderID, err := toKernelUUID(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetCylinderHistoryQuery(cylinderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.cylinderDetails(ctx, query)
}

func (s *Server) cylinderDetails(ctx echo.Context, query queries.GetCylinderHistoryQuery) error {
	details, err := s.h.GetCylinder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, cylinderDetails(details))
}

// DeleteCylinder handles DELETE /api/v1/cylinders/{id}.
func (s *Server) DeleteCylinder(ctx echo.Context, id openapi_types.UUID) error {
	cylinderID, err := toKernelUUID(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeleteCylinderCommand(cylinderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.h.DeleteCylinder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkCylinderReady handles POST /api/v1/cylinders/{id}/mark-ready.
func (s *Server) MarkCylinderReady(ctx echo.Context, id openapi_types.UUID) error {
	cylinderID, err := toKernelUUID(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewMarkCylinderReadyCommand(cylinderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.MarkCylinderReady.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ReadyProgress{
		CylinderID:      result.CylinderID.Bytes(),
		State:           result.State.String(),
		OrderID:         result.OrderID.Bytes(),
		OrderStatus:     result.OrderStatus.String(),
		Total:           result.Total,
		Ready:           result.Ready,
		IsOrderComplete: result.IsOrderComplete,
	})
}

// ReportCylinderProblem handles POST /api/v1/cylinders/{id}/report-problem.
func (s *Server) ReportCylinderProblem(ctx echo.Context, id openapi_types.UUID) error {
	var body ProblemRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cylinderID, err := toKernelUUID(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewReportCylinderProblemCommand(cylinderID, body.ProblemType, body.Notes)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.ReportProblem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ProblemReport{
		CylinderID:  result.CylinderID.Bytes(),
		State:       result.State.String(),
		ProblemType: result.ProblemType,
		Notes:       result.Notes,
	})
}

// AssignLabel handles POST /api/v1/cylinders/{id}/assign-label.
func (s *Server) AssignLabel(ctx echo.Context, id openapi_types.UUID) error {
	var body LabelRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cylinderID, err := toKernelUUID(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAssignLabelCommand(cylinderID, body.QRToken)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.AssignLabel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, LabelAssignment{
		CylinderID:         result.CylinderID.Bytes(),
		LabelToken:         result.LabelToken,
		PreviousLabelToken: result.PreviousLabelToken,
	})
}

// CreatePrintJob handles POST /api/v1/print-jobs.
func (s *Server) CreatePrintJob(ctx echo.Context) error {
	var body NewPrintJob
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	storeID, err := toKernelUUID(body.StoreID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreatePrintJobCommand(
		storeID,
		body.Quantity,
		body.TemplateID,
		body.CustomerName,
		body.CustomerPhone,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.CreatePrintJob.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, printJobResponse(result))
}

// GetPrintJob handles GET /api/v1/print-jobs/{id}.
func (s *Server) GetPrintJob(ctx echo.Context, id openapi_types.UUID) error {
	printJobID, err := toKernelUUID(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetPrintJobQuery(printJobID)
	if err != nil {
		return s.fail(ctx, err)
	}

	job, err := s.h.GetPrintJob.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, printJobSnapshot(job))
}

// AckPrintJobPrinted handles POST /api/v1/print-jobs/{id}/ack-printed.
func (s *Server) AckPrintJobPrinted(ctx echo.Context, id openapi_types.UUID) error {
	printJobID, err := toKernelUUID(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAckPrintJobPrintedCommand(printJobID)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.AckPrinted.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, printJobResponse(result))
}

// AckPrintJobFailed handles POST /api/v1/print-jobs/{id}/ack-failed.
func (s *Server) AckPrintJobFailed(ctx echo.Context, id openapi_types.UUID) error {
	var body PrintJobFailure
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	printJobID, err := toKernelUUID(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAckPrintJobFailedCommand(printJobID, body.ErrorMessage)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.AckFailed.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, printJobResponse(result))
}

// GetDashboardStats handles GET /api/v1/reports/dashboard.
func (s *Server) GetDashboardStats(ctx echo.Context) error {
	stats, err := s.h.GetDashboard.Handle(ctx.Request().Context(), queries.NewGetDashboardStatsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DashboardStats{
		OrdersOpen:                 stats.OrdersOpen,
		OrdersReadyForPickup:       stats.OrdersReadyForPickup,
		OrdersCompletedToday:       stats.OrdersCompletedToday,
		OrdersCompletedThisWeek:    stats.OrdersCompletedThisWeek,
		OrdersAwaitingNotification: stats.OrdersAwaitingNotification,
		CylindersReceived:          stats.CylindersReceived,
		CylindersReady:             stats.CylindersReady,
		CylindersWithProblem:       stats.CylindersWithProblem,
		CylindersFilledToday:       stats.CylindersFilledToday,
		CylindersFilledThisWeek:    stats.CylindersFilledThisWeek,
		TotalCustomers:             stats.TotalCustomers,
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
