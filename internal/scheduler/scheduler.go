// Package scheduler runs the periodic cache sweep.
package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/inkwell-sites/inkwell/internal/cache"
)

// Scheduler wraps gocron for the maintenance jobs the daemon runs.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
}

func New(logger *slog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create gocron scheduler: %w", err)
	}
	return &Scheduler{scheduler: s, logger: logger}, nil
}

// ScheduleCacheCleanup sweeps expired cache entries every interval.
func (s *Scheduler) ScheduleCacheCleanup(c *cache.Cache, interval time.Duration) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			removed := c.CleanupExpired()
			if removed > 0 {
				s.logger.Debug("cache sweep", slog.Int("removed", removed))
			}
		}),
		gocron.WithName("cache-cleanup"),
	)
	if err != nil {
		return fmt.Errorf("create cache cleanup job: %w", err)
	}
	return nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.logger.Info("scheduler started")
	s.scheduler.Start()
}

// Stop shuts the scheduler down, waiting for running jobs.
func (s *Scheduler) Stop() error {
	s.logger.Info("scheduler stopping")
	return s.scheduler.Shutdown()
}
