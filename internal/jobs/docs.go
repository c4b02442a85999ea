// Package jobs provides scheduled background tasks for the application.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance work.
//
// # Available Jobs
//
// 1. CacheEvictionJob - Runs every minute to evict expired events from the
// in-memory replay cache and drop empty subscriber entries
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with the shared registry
//	jobManager := jobs.NewJobManager(registry, time.Hour, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failed job starts will stop any already running jobs.
package jobs
