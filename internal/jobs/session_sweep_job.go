package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SessionSweepJob releases driver sessions that went stale without an
// explicit logout. Runs every minute; the staleness cutoff itself lives
// in the domain, the job only triggers the sweep.
type SessionSweepJob struct {
	handler commands.SweepSessionsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSessionSweepJob creates a new job for sweeping stale sessions.
func NewSessionSweepJob(handler commands.SweepSessionsCommandHandler, logger *slog.Logger) *SessionSweepJob {
	return &SessionSweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "session_sweep_job"),
	}
}

// Start begins the session sweep job to run every minute.
func (j *SessionSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewSweepSessionsCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "Session sweep job failed to build command", "error", err)
			return
		}

		swept, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Session sweep job failed", "error", err)
			return
		}

		if swept > 0 {
			j.logger.InfoContext(ctx, "Swept stale driver sessions", "count", swept)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session sweep job started (running every minute)")
	return nil
}

// Stop stops the session sweep job.
func (j *SessionSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session sweep job stopped")
}
