package jobs

import (
	"context"
	"log/slog"
	"time"

	"lastbite/internal/core/application/eventstream"

	"github.com/robfig/cron/v3"
)

// CacheEvictionJob periodically sweeps the event stream registry: cached
// events older than the replay horizon are evicted and subscriber entries
// with neither live channels nor cached events are dropped.
type CacheEvictionJob struct {
	registry *eventstream.Registry
	maxAge   time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewCacheEvictionJob creates a job sweeping the registry every minute.
// maxAge is the replay horizon: events older than this are no longer
// replayable and clients must resync via the persisted notification log.
func NewCacheEvictionJob(registry *eventstream.Registry, maxAge time.Duration, logger *slog.Logger) *CacheEvictionJob {
	return &CacheEvictionJob{
		registry: registry,
		maxAge:   maxAge,
		cron:     cron.New(),
		logger:   logger.With("component", "cache_eviction_job"),
	}
}

// Start begins the eviction job to run every minute.
func (j *CacheEvictionJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		dropped := j.registry.Sweep(j.maxAge)
		if dropped > 0 {
			j.logger.InfoContext(ctx, "Swept event stream registry", "entries_dropped", dropped)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Cache eviction job started (running every minute)")
	return nil
}

// Stop stops the eviction job.
func (j *CacheEvictionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Cache eviction job stopped")
}
