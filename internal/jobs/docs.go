// Package jobs provides scheduled background tasks for the ground-handling service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. SagaDispatchJob - Runs every second, drains the order queue and starts one saga per order
// 2. BacklogJob - Runs every five seconds and publishes order backlog gauges
//
// # Usage
//
//	jobManager := jobs.NewJobManager(dispatchHandler, listActiveOrdersHandler, queue, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The dispatch job ignores ErrDispatcherStopped, which only occurs during shutdown
// - Failed job starts will stop any already running jobs
//
// Stopping the jobs does not stop sagas already running; the dispatch command
// handler owns them and cancels them in its own Stop.
package jobs
