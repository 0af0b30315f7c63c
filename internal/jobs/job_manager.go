package jobs

import (
	"fmt"
	"log/slog"

	"marketplace/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	discountExpiryJob *DiscountExpiryJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(discounts ports.DiscountRuleRepository, logger *slog.Logger) *JobManager {
	return &JobManager{
		discountExpiryJob: NewDiscountExpiryJob(discounts, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.discountExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start discount expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.discountExpiryJob.Stop()
}
