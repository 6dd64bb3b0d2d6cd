package cmd

import (
	"fmt"
	"log/slog"

	httpadapter "refill/internal/adapters/in/http"
	"refill/internal/adapters/out/eventlog"
	"refill/internal/adapters/out/memory"
	"refill/internal/adapters/out/postgres"
	"refill/internal/adapters/out/printing"
	"refill/internal/core/application/usecases/commands"
	"refill/internal/core/application/usecases/queries"
	"refill/internal/core/ports"
	"refill/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type unitOfWorkFactory interface {
	Create() ports.UnitOfWork
}

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory unitOfWorkFactory
	registry   prometheus.Registerer
	logger     *slog.Logger

	publisher  *eventlog.Publisher
	metrics    *printing.Metrics
	hub        *printing.Hub
	dispatcher ports.PrintJobDispatcher
}

// NewCompositionRoot wires the adapters. gormDB is nil for the memory storage
// driver; read-side queries then answer queries.ErrReadModelUnavailable.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	registry prometheus.Registerer,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config:   config,
		gormDB:   gormDB,
		registry: registry,
		logger:   logger,
	}

	if gormDB != nil {
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
	} else {
		c.uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore())
	}

	var err error
	if c.publisher, err = eventlog.NewPublisher(logger, registry); err != nil {
		return nil, err
	}
	if c.metrics, err = printing.NewMetrics(registry); err != nil {
		return nil, err
	}

	switch config.PrintDispatcher {
	case DispatcherGateway:
		c.hub = printing.NewHub(config.PrintGatewayBuffer, c.metrics, logger)
		c.dispatcher = c.hub
	case DispatcherSimulated:
		c.dispatcher = printing.NewSimulatedDispatcher(c.CreateAckPrintJobPrintedCommandHandler(), c.metrics, logger)
	default:
		return nil, fmt.Errorf("unknown print dispatcher %q", config.PrintDispatcher)
	}

	return c, nil
}

// PrintGateway returns the hub print gateways subscribe to, or nil when jobs
// go to the simulated printer.
func (c *CompositionRoot) PrintGateway() httpadapter.PrintGateway {
	if c.hub == nil {
		return nil
	}
	return c.hub
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateCustomer:      c.CreateCreateCustomerCommandHandler(),
		UpdateCustomerPhone: commands.NewUpdateCustomerPhoneCommandHandler(c.customerUoWFactory()),
		UpdateCustomerName:  commands.NewUpdateCustomerNameCommandHandler(c.customerUoWFactory()),
		DeleteCustomer:      commands.NewDeleteCustomerCommandHandler(c.customerUoWFactory()),
		CreateOrder:         commands.NewCreateOrderCommandHandler(c.fulfillmentUoWFactory(), c.publisher),
		ReceiveCylinder:     commands.NewReceiveCylinderCommandHandler(c.fulfillmentUoWFactory(), c.publisher),
		ScanCylinder:        commands.NewScanCylinderToOrderCommandHandler(c.fulfillmentUoWFactory()),
		MarkCylinderReady:   commands.NewMarkCylinderReadyCommandHandler(c.fulfillmentUoWFactory(), c.publisher),
		MarkOrderReady:      commands.NewMarkCylindersReadyBatchCommandHandler(c.fulfillmentUoWFactory(), c.publisher),
		DeliverCylinder:     commands.NewDeliverCylinderCommandHandler(c.fulfillmentUoWFactory(), c.publisher),
		MarkOrderNotified:   commands.NewMarkOrderNotifiedCommandHandler(c.orderUoWFactory()),
		ReportProblem:       commands.NewReportCylinderProblemCommandHandler(c.fulfillmentUoWFactory()),
		AssignLabel:         commands.NewAssignLabelCommandHandler(c.fulfillmentUoWFactory(), c.publisher),
		DeleteCylinder:      commands.NewDeleteCylinderCommandHandler(c.fulfillmentUoWFactory(), c.publisher),
		CreatePrintJob:      c.CreateCreatePrintJobCommandHandler(),
		AckPrinted:          c.CreateAckPrintJobPrintedCommandHandler(),
		AckFailed:           commands.NewAckPrintJobFailedCommandHandler(c.printJobUoWFactory(), c.publisher),

		SearchCustomers:      queries.NewSearchCustomersQueryHandler(c.gormDB),
		GetCustomerCylinders: queries.NewGetCustomerCylindersQueryHandler(c.gormDB),
		GetReadyForPickup:    c.CreateGetReadyForPickupQueryHandler(),
		GetFillingQueue:      queries.NewGetFillingQueueQueryHandler(c.gormDB),
		GetCylinder:          queries.NewGetCylinderHistoryQueryHandler(c.gormDB),
		GetPrintJob:          queries.NewGetPrintJobQueryHandler(c.gormDB),
		GetDashboard:         queries.NewGetDashboardStatsQueryHandler(c.gormDB),
	}, c.PrintGateway(), c.logger)
}

// CreateJobManager builds the scheduled jobs without starting them.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	monitor, err := jobs.NewStalePrintJobMonitor(
		queries.NewGetStalePrintJobsQueryHandler(c.gormDB),
		c.config.StalePrintJobAfter,
		c.config.StalePrintJobSchedule,
		c.registry,
		c.logger,
	)
	if err != nil {
		return nil, err
	}

	manager := jobs.NewJobManager()
	manager.Add("stale print job monitor", monitor)
	manager.Add("pickup backlog report", jobs.NewPickupBacklogReport(
		c.CreateGetReadyForPickupQueryHandler(),
		c.config.PickupReportSchedule,
		c.logger,
	))
	return manager, nil
}

func (c *CompositionRoot) CreateCreateCustomerCommandHandler() commands.CreateCustomerCommandHandler {
	return commands.NewCreateCustomerCommandHandler(c.customerUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCreatePrintJobCommandHandler() commands.CreatePrintJobCommandHandler {
	return commands.NewCreatePrintJobCommandHandler(c.printJobUoWFactory(), c.dispatcher, c.publisher)
}

func (c *CompositionRoot) CreateAckPrintJobPrintedCommandHandler() commands.AckPrintJobPrintedCommandHandler {
	return commands.NewAckPrintJobPrintedCommandHandler(c.printJobUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateGetReadyForPickupQueryHandler() queries.GetReadyForPickupQueryHandler {
	return queries.NewGetReadyForPickupQueryHandler(c.gormDB)
}

func (c *CompositionRoot) customerUoWFactory() commands.CustomerUoWFactory {
	return FuncCustomerUoWFactory(func() commands.CustomerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) printJobUoWFactory() commands.PrintJobUoWFactory {
	return FuncPrintJobUoWFactory(func() commands.PrintJobUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fulfillmentUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncCustomerUoWFactory func() commands.CustomerUoW

func (f FuncCustomerUoWFactory) Create() commands.CustomerUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPrintJobUoWFactory func() commands.PrintJobUoW

func (f FuncPrintJobUoWFactory) Create() commands.PrintJobUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
