package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/domain/model/discount"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rule"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

func newEngine() services.PricingEngine {
	return services.NewPricingEngine(services.NewRuleResolver(), services.NewDiscountResolver())
}

// smallOrderZoneRule is a zone default with fee 40 split 20/20, 10%
// commission, a 300 minimum and a 60 small-order fee.
func smallOrderZoneRule(t *testing.T, zoneID kernel.UUID) *rule.DeliveryRule {
	t.Helper()

	r, err := rule.NewDeliveryRule(kernel.NewUUID(), zoneID, nil, nil,
		money(t, "40.00"), money(t, "20.00"), money(t, "20.00"),
		percent(t, 10), moneyPtr(t, "300.00"), moneyPtr(t, "60.00"), true)
	require.NoError(t, err)
	return r
}

func TestPricingEngine_SmallOrderGetsElevatedFee(t *testing.T) {
	engine := newEngine()
	zoneID := kernel.NewUUID()

	pricing, err := engine.Price(services.PricingRequest{
		ZoneID: zoneID,
		ShopID: kernel.NewUUID(),
		Items:  cartItems(t, map[string]int{"200.00": 1}),
		Rules:  []*rule.DeliveryRule{smallOrderZoneRule(t, zoneID)},
		Now:    time.Now(),
	})

	require.NoError(t, err)
	assert.True(t, pricing.IsSmallOrder)
	assert.Equal(t, "60.00", pricing.DeliveryFee.String())
	assert.Equal(t, "200.00", pricing.Subtotal.String())
	assert.Equal(t, "260.00", pricing.GrandTotal.String())
}

func TestPricingEngine_StrictRuleBlocksSmallOrder(t *testing.T) {
	engine := newEngine()
	zoneID := kernel.NewUUID()

	strict, err := rule.NewDeliveryRule(kernel.NewUUID(), zoneID, nil, nil,
		money(t, "40.00"), money(t, "20.00"), money(t, "20.00"),
		percent(t, 10), moneyPtr(t, "300.00"), nil, true)
	require.NoError(t, err)

	_, err = engine.Price(services.PricingRequest{
		ZoneID: zoneID,
		ShopID: kernel.NewUUID(),
		Items:  cartItems(t, map[string]int{"200.00": 1}),
		Rules:  []*rule.DeliveryRule{strict},
		Now:    time.Now(),
	})

	assert.ErrorIs(t, err, errs.ErrMinimumOrderNotMet)
}

func TestPricingEngine_CommissionAndSettlement(t *testing.T) {
	engine := newEngine()
	zoneID := kernel.NewUUID()

	pricing, err := engine.Price(services.PricingRequest{
		ZoneID: zoneID,
		ShopID: kernel.NewUUID(),
		Items:  cartItems(t, map[string]int{"1000.00": 1}),
		Rules:  []*rule.DeliveryRule{smallOrderZoneRule(t, zoneID)},
		Now:    time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, "100.00", pricing.CommissionAmount.String())
	assert.Equal(t, "900.00", pricing.ShopSettlement.String())
	assert.False(t, pricing.IsSmallOrder)
	assert.Equal(t, "40.00", pricing.DeliveryFee.String())
	assert.Equal(t, "920.00", pricing.ShopFinalEarning.String())
	assert.Equal(t, "120.00", pricing.PlatformFinalEarning.String())
}

func TestPricingEngine_QuoteNamesTheWinningRule(t *testing.T) {
	engine := newEngine()
	zoneID := kernel.NewUUID()
	winner := smallOrderZoneRule(t, zoneID)

	pricing, err := engine.Price(services.PricingRequest{
		ZoneID: zoneID,
		ShopID: kernel.NewUUID(),
		Items:  cartItems(t, map[string]int{"1000.00": 1}),
		Rules:  []*rule.DeliveryRule{winner},
		Now:    time.Now(),
	})

	require.NoError(t, err)
	assert.True(t, pricing.AppliedDeliveryRuleID.IsEqual(winner.ID()))
}

func TestPricingEngine_ShopDiscountReducesCommissionBase(t *testing.T) {
	engine := newEngine()
	zoneID := kernel.NewUUID()

	shopFlat := buildDiscount(t, discount.KindFlat, 100, nil, nil,
		discount.CreatorShop, discount.TargetGlobal, nil)
	platformCapped := buildDiscount(t, discount.KindPercentage, 10, moneyPtr(t, "40.00"), nil,
		discount.CreatorAdmin, discount.TargetGlobal, nil)

	pricing, err := engine.Price(services.PricingRequest{
		ZoneID:    zoneID,
		ShopID:    kernel.NewUUID(),
		Items:     cartItems(t, map[string]int{"500.00": 1}),
		Rules:     []*rule.DeliveryRule{smallOrderZoneRule(t, zoneID)},
		Discounts: []*discount.DiscountRule{shopFlat, platformCapped},
		Now:       time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, "100.00", pricing.ShopDiscount.String())
	assert.Equal(t, "40.00", pricing.PlatformDiscount.String())
	assert.Equal(t, "360.00", pricing.FinalPayable.String())

	// Commission base is 500 - 100 shop discount; the platform discount
	// does not shrink what the shop owes commission on.
	assert.Equal(t, "40.00", pricing.CommissionAmount.String())
	assert.Equal(t, "360.00", pricing.ShopSettlement.String())

	require.NotNil(t, pricing.AppliedShopDiscountID)
	require.NotNil(t, pricing.AppliedPlatformDiscountID)
	assert.True(t, pricing.AppliedShopDiscountID.IsEqual(shopFlat.ID()))
	assert.True(t, pricing.AppliedPlatformDiscountID.IsEqual(platformCapped.ID()))
}

func TestPricingEngine_DiscountsNeverPushPayableBelowZero(t *testing.T) {
	engine := newEngine()
	zoneID := kernel.NewUUID()

	generous := buildDiscount(t, discount.KindFlat, 400, nil, nil,
		discount.CreatorShop, discount.TargetGlobal, nil)
	alsoGenerous := buildDiscount(t, discount.KindFlat, 400, nil, nil,
		discount.CreatorAdmin, discount.TargetGlobal, nil)

	pricing, err := engine.Price(services.PricingRequest{
		ZoneID:    zoneID,
		ShopID:    kernel.NewUUID(),
		Items:     cartItems(t, map[string]int{"500.00": 1}),
		Rules:     []*rule.DeliveryRule{smallOrderZoneRule(t, zoneID)},
		Discounts: []*discount.DiscountRule{generous, alsoGenerous},
		Now:       time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, "0.00", pricing.FinalPayable.String())
	assert.Equal(t, pricing.FinalPayable.Add(pricing.DeliveryFee).String(), pricing.GrandTotal.String())
}

func TestPricingEngine_GrandTotalAlwaysPayablePlusFee(t *testing.T) {
	engine := newEngine()
	zoneID := kernel.NewUUID()

	carts := []map[string]int{
		{"200.00": 1},
		{"300.00": 1},
		{"123.45": 3},
		{"1000.00": 2},
	}

	for _, cart := range carts {
		pricing, err := engine.Price(services.PricingRequest{
			ZoneID: zoneID,
			ShopID: kernel.NewUUID(),
			Items:  cartItems(t, cart),
			Rules:  []*rule.DeliveryRule{smallOrderZoneRule(t, zoneID)},
			Now:    time.Now(),
		})

		require.NoError(t, err)
		assert.True(t, pricing.GrandTotal.IsEqual(pricing.FinalPayable.Add(pricing.DeliveryFee)))
	}
}

func TestPricingEngine_NoRuleForZoneFails(t *testing.T) {
	engine := newEngine()

	_, err := engine.Price(services.PricingRequest{
		ZoneID: kernel.NewUUID(),
		ShopID: kernel.NewUUID(),
		Items:  cartItems(t, map[string]int{"500.00": 1}),
		Now:    time.Now(),
	})

	assert.ErrorIs(t, err, errs.ErrRuleNotFound)
}
