package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	httpadapter "refill/internal/adapters/in/http"
	"refill/internal/adapters/out/eventlog"
	"refill/internal/adapters/out/memory"
	"refill/internal/adapters/out/printing"
	"refill/internal/core/application/usecases/commands"
	"refill/internal/core/application/usecases/queries"
	"refill/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
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

type testAPI struct {
	echo *echo.Echo
	hub  *printing.Hub
}

// newTestAPI wires the API over the in-memory store. Read-model queries have
// no database and answer 503. With gateway set, print jobs go to a Hub
// instead of the simulated printer.
func newTestAPI(t *testing.T, gateway bool) *testAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()

	publisher, err := eventlog.NewPublisher(logger, reg)
	require.NoError(t, err)
	metrics, err := printing.NewMetrics(reg)
	require.NoError(t, err)

	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
	uows := uowFunc(func() commands.UoW { return factory.Create() })
	customerUoWs := customerUoWFunc(func() commands.CustomerUoW { return factory.Create() })
	orderUoWs := orderUoWFunc(func() commands.OrderUoW { return factory.Create() })
	printJobUoWs := printJobUoWFunc(func() commands.PrintJobUoW { return factory.Create() })

	ackPrinted := commands.NewAckPrintJobPrintedCommandHandler(printJobUoWs, publisher)

	api := &testAPI{}
	var dispatcher ports.PrintJobDispatcher
	var printGateway httpadapter.PrintGateway
	if gateway {
		api.hub = printing.NewHub(4, metrics, logger)
		dispatcher = api.hub
		printGateway = api.hub
	} else {
		dispatcher = printing.NewSimulatedDispatcher(ackPrinted, metrics, logger)
	}

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateCustomer:      commands.NewCreateCustomerCommandHandler(customerUoWs, publisher),
		UpdateCustomerPhone: commands.NewUpdateCustomerPhoneCommandHandler(customerUoWs),
		UpdateCustomerName:  commands.NewUpdateCustomerNameCommandHandler(customerUoWs),
		DeleteCustomer:      commands.NewDeleteCustomerCommandHandler(customerUoWs),
		CreateOrder:         commands.NewCreateOrderCommandHandler(uows, publisher),
		ReceiveCylinder:     commands.NewReceiveCylinderCommandHandler(uows, publisher),
		ScanCylinder:        commands.NewScanCylinderToOrderCommandHandler(uows),
		MarkCylinderReady:   commands.NewMarkCylinderReadyCommandHandler(uows, publisher),
		MarkOrderReady:      commands.NewMarkCylindersReadyBatchCommandHandler(uows, publisher),
		DeliverCylinder:     commands.NewDeliverCylinderCommandHandler(uows, publisher),
		MarkOrderNotified:   commands.NewMarkOrderNotifiedCommandHandler(orderUoWs),
		ReportProblem:       commands.NewReportCylinderProblemCommandHandler(uows),
		AssignLabel:         commands.NewAssignLabelCommandHandler(uows, publisher),
		DeleteCylinder:      commands.NewDeleteCylinderCommandHandler(uows, publisher),
		CreatePrintJob:      commands.NewCreatePrintJobCommandHandler(printJobUoWs, dispatcher, publisher),
		AckPrinted:          ackPrinted,
		AckFailed:           commands.NewAckPrintJobFailedCommandHandler(printJobUoWs, publisher),

		SearchCustomers:      queries.NewSearchCustomersQueryHandler(nil),
		GetCustomerCylinders: queries.NewGetCustomerCylindersQueryHandler(nil),
		GetReadyForPickup:    queries.NewGetReadyForPickupQueryHandler(nil),
		GetFillingQueue:      queries.NewGetFillingQueueQueryHandler(nil),
		GetCylinder:          queries.NewGetCylinderHistoryQueryHandler(nil),
		GetPrintJob:          queries.NewGetPrintJobQueryHandler(nil),
		GetDashboard:         queries.NewGetDashboardStatsQueryHandler(nil),
	}, printGateway, logger)

	e, err := httpadapter.NewRouter(context.Background(), server, httpadapter.RouterOptions{
		Gatherer: reg,
		Logger:   logger,
		LogLevel: slog.LevelError,
	})
	require.NoError(t, err)

	api.echo = e
	return api
}

// do sends a request with an optional JSON body and returns the recorder.
func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
}
