package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DiscountExpiryJob deactivates discount rules whose validity window has
// closed. The pricing resolver checks the window itself on every quote, so
// the sweep is hygiene for listings and admin views, not correctness.
type DiscountExpiryJob struct {
	discounts ports.DiscountRuleRepository
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewDiscountExpiryJob creates a job that sweeps expired discounts every minute.
func NewDiscountExpiryJob(discounts ports.DiscountRuleRepository, logger *slog.Logger) *DiscountExpiryJob {
	return &DiscountExpiryJob{
		discounts: discounts,
		cron:      cron.New(),
		logger:    logger.With("component", "discount_expiry_job"),
	}
}

// Start begins the expiry sweep, running at the top of every minute.
func (j *DiscountExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		swept, sweepErr := j.discounts.DeactivateExpired(ctx, time.Now())
		if sweepErr != nil {
			j.logger.ErrorContext(ctx, "Discount expiry sweep failed", "error", sweepErr)
			return
		}

		if swept > 0 {
			j.logger.InfoContext(ctx, "Deactivated expired discount rules", "count", swept)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Discount expiry job started (running every minute)")
	return nil
}

// Stop stops the expiry sweep.
func (j *DiscountExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Discount expiry job stopped")
}
