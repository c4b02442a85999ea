package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"lastbite/internal/core/application/eventstream"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	cacheEvictionJob *CacheEvictionJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	registry *eventstream.Registry,
	cacheMaxAge time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		cacheEvictionJob: NewCacheEvictionJob(registry, cacheMaxAge, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.cacheEvictionJob.Start(); err != nil {
		return fmt.Errorf("failed to start cache eviction job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.cacheEvictionJob.Stop()
}
