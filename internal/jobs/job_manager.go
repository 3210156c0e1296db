package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxRelayJob  *OutboxRelayJob
	orderBacklogJob *OrderBacklogJob
}

// NewJobManager creates a new job manager. outboxRelayJob is nil when no
// broker is configured.
func NewJobManager(outboxRelayJob *OutboxRelayJob, orderBacklogJob *OrderBacklogJob) *JobManager {
	return &JobManager{
		outboxRelayJob:  outboxRelayJob,
		orderBacklogJob: orderBacklogJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderBacklogJob.Start(); err != nil {
		return fmt.Errorf("failed to start order backlog job: %w", err)
	}

	if jm.outboxRelayJob == nil {
		return nil
	}

	if err := jm.outboxRelayJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.orderBacklogJob.Stop()
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.outboxRelayJob != nil {
		jm.outboxRelayJob.Stop()
	}
	jm.orderBacklogJob.Stop()
}
