package printing

import (
	"context"
	"log/slog"

	"refill/internal/core/application/usecases/commands"
	"refill/internal/core/ports"
)

const simulatedDispatcher = "simulated"

// PrintedAcknowledger is satisfied by commands.AckPrintJobPrintedCommandHandler.
type PrintedAcknowledger interface {
	Handle(ctx context.Context, cmd commands.AckPrintJobPrintedCommand) (commands.PrintJobResult, error)
}

// SimulatedDispatcher acknowledges every job as printed during Dispatch.
type SimulatedDispatcher struct {
	acknowledger PrintedAcknowledger
	metrics      *Metrics
	logger       *slog.Logger
}

func NewSimulatedDispatcher(acknowledger PrintedAcknowledger, metrics *Metrics, logger *slog.Logger) *SimulatedDispatcher {
	return &SimulatedDispatcher{
		acknowledger: acknowledger,
		metrics:      metrics,
		logger:       logger.With("component", "simulated_print_dispatcher"),
	}
}

func (d *SimulatedDispatcher) Dispatch(ctx context.Context, request ports.PrintRequest) {
	d.logger.InfoContext(ctx, "[SIMULATED PRINT] Printing labels",
		"print_job_id", request.PrintJobID.String(),
		"quantity", request.Quantity,
		"template_id", request.TemplateID,
		"customer_name", orNA(request.CustomerName),
		"customer_phone", orNA(request.CustomerPhone),
	)

	cmd, err := commands.NewAckPrintJobPrintedCommand(request.PrintJobID)
	if err != nil {
		d.fail(ctx, request, err)
		return
	}

	if _, err := d.acknowledger.Handle(ctx, cmd); err != nil {
		d.fail(ctx, request, err)
		return
	}

	d.metrics.inc(simulatedDispatcher, outcomePrinted)
	d.logger.InfoContext(ctx, "[SIMULATED PRINT] Job marked as printed", "print_job_id", request.PrintJobID.String())
}

func (d *SimulatedDispatcher) fail(ctx context.Context, request ports.PrintRequest, err error) {
	d.metrics.inc(simulatedDispatcher, outcomeAckFailed)
	d.logger.ErrorContext(ctx, "[SIMULATED PRINT] Acknowledgment failed",
		"print_job_id", request.PrintJobID.String(),
		"error", err,
	)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
