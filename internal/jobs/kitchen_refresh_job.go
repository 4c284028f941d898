// Package jobs contains the scheduled background work: periodic snapshot
// refreshes that keep connected viewers converged even when no order events
// fire for a while.
package jobs

import (
	"context"
	"log/slog"

	"orderboard/internal/realtime"

	"github.com/robfig/cron/v3"
)

// KitchenRefreshJob periodically pushes a full queue snapshot to the kitchen
// displays. Event-driven snapshots cover the common path; this job repairs
// viewers that missed an event and keeps waiting times ticking.
type KitchenRefreshJob struct {
	broadcaster *realtime.Broadcaster
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewKitchenRefreshJob creates a job that refreshes kitchen displays every
// 30 seconds.
func NewKitchenRefreshJob(broadcaster *realtime.Broadcaster, logger *slog.Logger) *KitchenRefreshJob {
	return &KitchenRefreshJob{
		broadcaster: broadcaster,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "kitchen_refresh_job"),
	}
}

// Start begins the periodic kitchen refresh.
func (j *KitchenRefreshJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		if err := j.broadcaster.BroadcastKitchenSnapshot(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Kitchen refresh job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Kitchen refresh job started (running every 30 seconds)")
	return nil
}

// Stop stops the kitchen refresh job.
func (j *KitchenRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Kitchen refresh job stopped")
}
