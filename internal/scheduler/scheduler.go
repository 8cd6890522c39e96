package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"studybuddy-backend/internal/jobs"
	"studybuddy-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner. It fails
// when a configured schedule cannot be parsed.
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler

	// Daily digest of join requests waiting on each owner
	if _, err := s.cron.AddFunc(cfg.PendingRequestDigest, s.jobs.SendPendingRequestDigests); err != nil {
		logger.Error("Failed to register SendPendingRequestDigests job", "error", err)
		return fmt.Errorf("pending request digest schedule %q: %w", cfg.PendingRequestDigest, err)
	}

	// Blobs left behind by failed deletes
	if _, err := s.cron.AddFunc(cfg.OrphanedFileSweep, s.jobs.SweepOrphanedFiles); err != nil {
		logger.Error("Failed to register SweepOrphanedFiles job", "error", err)
		return fmt.Errorf("orphaned file sweep schedule %q: %w", cfg.OrphanedFileSweep, err)
	}

	logger.Info("All cron jobs registered successfully", "jobs", len(s.cron.Entries()))
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler, waiting for running jobs
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler has jobs registered
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
