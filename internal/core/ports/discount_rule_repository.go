package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/discount"
	"marketplace/internal/core/domain/model/kernel"
)

// DiscountRuleRepository defines read access to discount rules plus the
// maintenance operation used by the expiry sweep job.
type DiscountRuleRepository interface {
	// ListCandidates retrieves all active discount rules whose validity
	// window contains the given instant and whose target matches the cart:
	// GLOBAL rules, LOCATION rules for the zone, SHOP rules for the shop,
	// and PRODUCT rules for any of the given product ids.
	ListCandidates(ctx context.Context, zoneID kernel.UUID, shopID kernel.UUID, productIDs []kernel.UUID, now time.Time) ([]*discount.DiscountRule, error)

	// DeactivateExpired flips is_active off for every rule whose validity
	// window ended before the given instant. Returns the number of rules
	// deactivated.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}
