package rule

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	oneDec = decimal.NewFromInt(1)
	twoDec = decimal.NewFromInt(2)
)

// FeeAssessment is the outcome of checking a cart subtotal against a rule's
// minimum order value: the delivery fee to charge and whether the order runs
// under the elevated small-order policy.
type FeeAssessment struct {
	Fee          kernel.Money
	IsSmallOrder bool
}

// AssessOrderValue decides how the rule treats a cart with the given subtotal.
//
//   - Subtotal at or above the minimum (or no minimum configured): normal
//     order, the rule's delivery fee applies.
//   - Subtotal below the minimum with a small-order fee configured: the order
//     is permitted as a small order and charged the elevated fee.
//   - Subtotal below the minimum in strict mode (no small-order fee): the
//     order is blocked with MinimumOrderNotMetError carrying the threshold.
func (r *DeliveryRule) AssessOrderValue(subtotal kernel.Money) (FeeAssessment, error) {
	if r.minOrderValue == nil || !subtotal.LessThan(*r.minOrderValue) {
		return FeeAssessment{Fee: r.deliveryFee, IsSmallOrder: false}, nil
	}

	if r.smallOrderDeliveryFee != nil {
		return FeeAssessment{Fee: *r.smallOrderDeliveryFee, IsSmallOrder: true}, nil
	}

	return FeeAssessment{}, errs.NewMinimumOrderNotMetError(r.minOrderValue.String())
}

// SplitDeliveryFee derives the shop/platform split of an assessed delivery fee.
//
// Normal orders use the rule's configured shares verbatim. Small orders
// re-derive the split by applying the normal shop:platform ratio to the
// elevated fee; when the normal split sums to zero the small fee is split
// 50/50. The platform side always takes the rounding remainder so the two
// parts sum exactly to the fee.
func (r *DeliveryRule) SplitDeliveryFee(assessment FeeAssessment) (shopPart, platformPart kernel.Money) {
	if !assessment.IsSmallOrder {
		return r.shopDeliveryShare, r.platformDeliveryShare
	}

	total := r.shopDeliveryShare.Add(r.platformDeliveryShare)
	if total.IsZero() {
		shopPart = assessment.Fee.MulRatio(oneDec, twoDec)
		return shopPart, assessment.Fee.SubOrZero(shopPart)
	}

	shopPart = assessment.Fee.MulRatio(r.shopDeliveryShare.Amount(), total.Amount())
	return shopPart, assessment.Fee.SubOrZero(shopPart)
}
