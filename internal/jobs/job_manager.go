package jobs

import (
	"fmt"
	"log/slog"

	"orderboard/internal/realtime"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	kitchenRefreshJob   *KitchenRefreshJob
	dashboardRefreshJob *DashboardRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the broadcaster as the dependency the refresh jobs drive.
func NewJobManager(broadcaster *realtime.Broadcaster, logger *slog.Logger) *JobManager {
	return &JobManager{
		kitchenRefreshJob:   NewKitchenRefreshJob(broadcaster, logger),
		dashboardRefreshJob: NewDashboardRefreshJob(broadcaster, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.kitchenRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start kitchen refresh job: %w", err)
	}

	if err := jm.dashboardRefreshJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.kitchenRefreshJob.Stop()
		return fmt.Errorf("failed to start dashboard refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.kitchenRefreshJob.Stop()
	jm.dashboardRefreshJob.Stop()
}
