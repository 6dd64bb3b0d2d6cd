package jobs

import (
	"context"
	"errors"
	"log/slog"

	"refill/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// ReadyForPickupFinder is the read-side handler the report polls.
type ReadyForPickupFinder interface {
	Handle(ctx context.Context, query queries.GetReadyForPickupQuery) ([]queries.GetReadyForPickupQueryResponse, error)
}

// PickupBacklog summarizes orders waiting at the counter.
type PickupBacklog struct {
	Ready                int
	AwaitingNotification int
}

// PickupBacklogReport periodically logs how many orders are ready for pickup
// and how many of those customers were not told yet.
type PickupBacklogReport struct {
	finder   ReadyForPickupFinder
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewPickupBacklogReport(finder ReadyForPickupFinder, schedule string, logger *slog.Logger) *PickupBacklogReport {
	return &PickupBacklogReport{
		finder:   finder,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "pickup_backlog_report"),
	}
}

func (j *PickupBacklogReport) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pickup backlog report started", "schedule", j.schedule)
	return nil
}

func (j *PickupBacklogReport) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Pickup backlog report stopped")
}

// Run builds and logs one report. The second result is false when the
// read model could not be queried.
func (j *PickupBacklogReport) Run(ctx context.Context) (PickupBacklog, bool) {
	orders, err := j.finder.Handle(ctx, queries.NewGetReadyForPickupQuery(""))
	if err != nil {
		if errors.Is(err, queries.ErrReadModelUnavailable) {
			j.logger.DebugContext(ctx, "Pickup backlog report skipped", "reason", err)
		} else {
			j.logger.ErrorContext(ctx, "Pickup backlog report failed", "error", err)
		}
		return PickupBacklog{}, false
	}

	backlog := PickupBacklog{Ready: len(orders)}
	for _, o := range orders {
		if o.NeedsNotification {
			backlog.AwaitingNotification++
		}
	}

	j.logger.InfoContext(ctx, "Pickup backlog",
		"ready_for_pickup", backlog.Ready,
		"awaiting_notification", backlog.AwaitingNotification,
	)
	return backlog, true
}
