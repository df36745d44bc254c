package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/changes"
	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ResyncNudgeJob periodically publishes broad change notifications so
// every connected client re-fetches even if an earlier targeted event
// was lost in transit. Runs every thirty seconds.
type ResyncNudgeJob struct {
	publisher commands.ChangePublisher
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewResyncNudgeJob creates a new job for the periodic resync nudge.
func NewResyncNudgeJob(publisher commands.ChangePublisher, logger *slog.Logger) *ResyncNudgeJob {
	return &ResyncNudgeJob{
		publisher: publisher,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "resync_nudge_job"),
	}
}

// Start begins the resync nudge job to run every thirty seconds.
func (j *ResyncNudgeJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		for _, resource := range []string{changes.ResourceOrders, changes.ResourceDrivers} {
			if err := j.publisher.PublishChange(ctx, resource, ""); err != nil {
				j.logger.WarnContext(ctx, "Resync nudge publish failed",
					"resource", resource, "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Resync nudge job started (running every thirty seconds)")
	return nil
}

// Stop stops the resync nudge job.
func (j *ResyncNudgeJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Resync nudge job stopped")
}
