package jobs

import (
	"context"
	"log/slog"

	"orderboard/internal/realtime"

	"github.com/robfig/cron/v3"
)

// DashboardRefreshJob periodically recomputes the analytics rollup and pushes
// it to connected admin dashboards. The rollup is never broadcast per event;
// this job is its only live delivery path.
type DashboardRefreshJob struct {
	broadcaster *realtime.Broadcaster
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewDashboardRefreshJob creates a job that refreshes dashboards every
// 10 seconds.
func NewDashboardRefreshJob(broadcaster *realtime.Broadcaster, logger *slog.Logger) *DashboardRefreshJob {
	return &DashboardRefreshJob{
		broadcaster: broadcaster,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "dashboard_refresh_job"),
	}
}

// Start begins the periodic dashboard refresh.
func (j *DashboardRefreshJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()

		if err := j.broadcaster.BroadcastDashboardSnapshot(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Dashboard refresh job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dashboard refresh job started (running every 10 seconds)")
	return nil
}

// Stop stops the dashboard refresh job.
func (j *DashboardRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dashboard refresh job stopped")
}
