package jobs

import (
	"time"

	"garbage-billing-backend/internal/config"
	"garbage-billing-backend/internal/logger"
	"garbage-billing-backend/internal/repository/document"
	"garbage-billing-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store    *document.Store
	services *Services
	config   *config.Config
	now      func() time.Time
}

// Services holds the service dependencies needed by jobs. Reports is only
// set inside the API server, where the report caches live.
type Services struct {
	Email   service.EmailService
	Reports service.ReportService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *document.Store, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:    store,
		services: services,
		config:   cfg,
		now:      time.Now,
	}
}

// Config returns the configuration the runner was built with.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// Services returns the dependencies the runner was built with.
func (jr *JobRunner) Services() *Services {
	return jr.services
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

// RunAll runs every job this runner has dependencies for (for manual execution)
func (jr *JobRunner) RunAll() {
	if jr.services.Reports != nil {
		jr.ReconcileReportHistories()
	}
	if jr.services.Email != nil {
		jr.SendOutstandingDigest()
	}
}
