// Package jobs provides scheduled background tasks for the cafeteria service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations that must not run on the request path.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Runs every second to publish stored order events to RabbitMQ
// 2. OrderBacklogJob - Runs every 15 seconds to refresh the per-status orders gauge
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	relay, err := jobs.NewOutboxRelayJob(relayHandler, 100, metrics, logger)
//	if err != nil {
//		return err
//	}
//	backlog := jobs.NewOrderBacklogJob(backlogHandler, metrics, logger)
//
//	jobManager := jobs.NewJobManager(relay, backlog)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both schedules use the seconds field ("* * * * * *" and "*/15 * * * * *").
// A tick that fires while the previous run of the same job is still working
// is skipped.
//
// # Error Handling
//
// - The relay stops a pass at the first publish failure and retries on the next tick
// - Failed backlog reads keep the last published gauge values
// - Failed job starts will stop any already running jobs
package jobs
