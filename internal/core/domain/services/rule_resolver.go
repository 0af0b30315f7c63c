package services

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rule"
	"marketplace/internal/pkg/errs"
)

// RuleResolver is a domain service that picks the single most specific active
// delivery rule for a cart out of a zone's rule set.
//
// Resolution order, first match wins:
//  1. A rule bound to the shop itself, regardless of category.
//  2. A rule bound to the requested category with no shop binding.
//  3. Among rules bound to any of the shop's own categories, the one with
//     the highest delivery fee. Charging the worst case is deliberate when
//     a multi-category shop gives no better signal.
//  4. The zone default rule with neither category nor shop binding.
//
// No match at any tier fails with RuleNotFoundError.
type RuleResolver struct{}

// NewRuleResolver creates a new RuleResolver instance.
func NewRuleResolver() RuleResolver {
	return RuleResolver{}
}

// Resolve selects the winning rule from the zone's active rules. Category and
// shopID are optional; shopCategories are the categories the shop sells in
// and feed the tier 3 fallback.
func (r RuleResolver) Resolve(
	rules []*rule.DeliveryRule,
	zoneID kernel.UUID,
	category *string,
	shopID *kernel.UUID,
	shopCategories []string,
) (*rule.DeliveryRule, error) {
	active := make([]*rule.DeliveryRule, 0, len(rules))
	for _, candidate := range rules {
		if candidate.IsActive() && candidate.ZoneID().IsEqual(zoneID) {
			active = append(active, candidate)
		}
	}

	if shopID != nil {
		for _, candidate := range active {
			if candidate.ShopID() != nil && candidate.ShopID().IsEqual(*shopID) {
				return candidate, nil
			}
		}
	}

	if category != nil {
		if winner := matchCategory(active, *category); winner != nil {
			return winner, nil
		}
	}

	if shopID != nil {
		var worst *rule.DeliveryRule
		for _, shopCategory := range shopCategories {
			candidate := matchCategory(active, shopCategory)
			if candidate == nil {
				continue
			}
			if worst == nil || candidate.DeliveryFee().GreaterThan(worst.DeliveryFee()) {
				worst = candidate
			}
		}
		if worst != nil {
			return worst, nil
		}
	}

	for _, candidate := range active {
		if candidate.ShopID() == nil && candidate.Category() == nil {
			return candidate, nil
		}
	}

	return nil, errs.NewRuleNotFoundError(zoneID.String())
}

// matchCategory finds the rule bound to the given category with no shop
// binding, or nil.
func matchCategory(rules []*rule.DeliveryRule, category string) *rule.DeliveryRule {
	for _, candidate := range rules {
		if candidate.ShopID() == nil && candidate.Category() != nil && *candidate.Category() == category {
			return candidate
		}
	}
	return nil
}
