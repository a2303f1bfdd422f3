package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	sagaDispatchJob *SagaDispatchJob
	backlogJob      *BacklogJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes handlers as dependencies to wire up the job execution.
func NewJobManager(
	dispatchHandler DispatchHandler,
	activeOrdersHandler ActiveOrdersHandler,
	queue QueueLen,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		sagaDispatchJob: NewSagaDispatchJob(dispatchHandler, logger),
		backlogJob:      NewBacklogJob(activeOrdersHandler, queue, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.sagaDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start saga dispatch job: %w", err)
	}

	if err := jm.backlogJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.sagaDispatchJob.Stop()
		return fmt.Errorf("failed to start backlog job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.backlogJob.Stop()
	jm.sagaDispatchJob.Stop()
}
