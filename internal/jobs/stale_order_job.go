package jobs

import (
	"context"
	"log/slog"
	"time"

	"yumexpress/internal/core/application/usecases/commands"
	"yumexpress/internal/metrics"

	"github.com/robfig/cron/v3"
)

// StaleOrderJob manages the scheduled cancellation of abandoned orders.
// Runs every minute to cancel unpaid pending orders the vendor never
// answered within the configured age limit.
type StaleOrderJob struct {
	handler commands.CancelStaleOrdersCommandHandler
	maxAge  time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStaleOrderJob creates a new job for sweeping stale orders.
// Uses CancelStaleOrdersCommandHandler to cancel expired orders every minute.
func NewStaleOrderJob(
	handler commands.CancelStaleOrdersCommandHandler,
	maxAge time.Duration,
	logger *slog.Logger,
) *StaleOrderJob {
	return &StaleOrderJob{
		handler: handler,
		maxAge:  maxAge,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "stale_order_job"),
	}
}

// Start begins the stale order sweep to run every minute.
func (j *StaleOrderJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewCancelStaleOrdersCommand(j.maxAge)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Stale order job misconfigured", "error", cmdErr)
			return
		}

		cancelled, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Stale order job failed", "error", handleErr)
			return
		}

		if cancelled > 0 {
			metrics.OrdersCancelledStaleTotal.Add(float64(cancelled))
			j.logger.InfoContext(ctx, "Cancelled stale orders", "count", cancelled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order job started (running every minute)")
	return nil
}

// Stop stops the stale order sweep.
func (j *StaleOrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order job stopped")
}
