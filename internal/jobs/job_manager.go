package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	sessionSweepJob *SessionSweepJob
	resyncNudgeJob  *ResyncNudgeJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	sweepHandler commands.SweepSessionsCommandHandler,
	publisher commands.ChangePublisher,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		sessionSweepJob: NewSessionSweepJob(sweepHandler, logger),
		resyncNudgeJob:  NewResyncNudgeJob(publisher, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.sessionSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start session sweep job: %w", err)
	}

	if err := jm.resyncNudgeJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.sessionSweepJob.Stop()
		return fmt.Errorf("failed to start resync nudge job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.resyncNudgeJob.Stop()
	jm.sessionSweepJob.Stop()
}
