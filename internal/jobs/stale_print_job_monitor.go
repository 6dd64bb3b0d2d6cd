package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"refill/internal/core/application/usecases/queries"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

// StalePrintJobsFinder is the read-side handler the monitor polls.
type StalePrintJobsFinder interface {
	Handle(ctx context.Context, query queries.GetStalePrintJobsQuery) ([]queries.GetStalePrintJobsQueryResponse, error)
}

// StalePrintJobMonitor reports print jobs that stay Dispatched with no
// acknowledgement from the print gateway.
type StalePrintJobMonitor struct {
	finder   StalePrintJobsFinder
	after    time.Duration
	schedule string
	gauge    prometheus.Gauge
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStalePrintJobMonitor creates the monitor and registers its gauge.
func NewStalePrintJobMonitor(
	finder StalePrintJobsFinder,
	after time.Duration,
	schedule string,
	reg prometheus.Registerer,
	logger *slog.Logger,
) (*StalePrintJobMonitor, error) {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "refill_stale_print_jobs",
		Help: "Print jobs dispatched and not acknowledged within the threshold at the last check.",
	})
	if err := reg.Register(gauge); err != nil {
		return nil, fmt.Errorf("register stale print job gauge: %w", err)
	}

	return &StalePrintJobMonitor{
		finder:   finder,
		after:    after,
		schedule: schedule,
		gauge:    gauge,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "stale_print_job_monitor"),
	}, nil
}

// Start schedules the check.
func (j *StalePrintJobMonitor) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale print job monitor started",
		"schedule", j.schedule, "after", j.after)
	return nil
}

// Stop waits for a running check to finish.
func (j *StalePrintJobMonitor) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stale print job monitor stopped")
}

// Run performs a single check and returns the number of stale jobs found.
func (j *StalePrintJobMonitor) Run(ctx context.Context) int {
	query, err := queries.NewGetStalePrintJobsQuery(j.after)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale print job monitor misconfigured", "error", err)
		return 0
	}

	stale, err := j.finder.Handle(ctx, query)
	if err != nil {
		if errors.Is(err, queries.ErrReadModelUnavailable) {
			j.logger.DebugContext(ctx, "Stale print job check skipped", "reason", err)
			return 0
		}
		j.logger.ErrorContext(ctx, "Stale print job check failed", "error", err)
		return 0
	}

	j.gauge.Set(float64(len(stale)))
	for _, job := range stale {
		j.logger.WarnContext(ctx, "Print job not acknowledged",
			"print_job_id", job.PrintJobID.String(),
			"store_id", job.StoreID.String(),
			"quantity", job.Quantity,
			"age", job.Age.Round(time.Second),
		)
	}
	return len(stale)
}
