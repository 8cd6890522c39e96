package jobs

import (
	"time"

	"studybuddy-backend/internal/config"
	"studybuddy-backend/internal/logger"
	"studybuddy-backend/internal/repository"
	"studybuddy-backend/internal/service"
	"studybuddy-backend/internal/storage"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	repos    Repositories
	blobs    storage.Storage
	services *Services
	config   *config.Config
	now      func() time.Time
}

// Repositories holds the data access the jobs need
type Repositories struct {
	JoinRequests repository.JoinRequestRepository
	Files        repository.FileRepository
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Email service.EmailService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(repos Repositories, blobs storage.Storage, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		repos:    repos,
		blobs:    blobs,
		services: services,
		config:   cfg,
		now:      time.Now,
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.SendPendingRequestDigests()
	jr.SweepOrphanedFiles()
}
