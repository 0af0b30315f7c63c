package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rule"
)

// DeliveryRuleRepository defines read access to active delivery rules.
// Rule selection itself is a domain concern; the repository only narrows
// the candidate set to one zone.
type DeliveryRuleRepository interface {
	// ListActiveForZone retrieves every active rule scoped to the zone,
	// including shop-bound and category-bound ones. Returns an empty slice
	// when the zone has no rules.
	ListActiveForZone(ctx context.Context, zoneID kernel.UUID) ([]*rule.DeliveryRule, error)
}
