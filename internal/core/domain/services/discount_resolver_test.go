package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/domain/model/discount"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
)

// buildDiscount constructs an active, always-live discount rule.
func buildDiscount(
	t *testing.T,
	kind discount.Kind,
	value int64,
	maxAmount *kernel.Money,
	minOrder *kernel.Money,
	creatorType discount.CreatorType,
	targetType discount.TargetType,
	targetID *kernel.UUID,
) *discount.DiscountRule {
	t.Helper()

	d, err := discount.NewDiscountRule(kernel.NewUUID(), kind, decimal.NewFromInt(value),
		maxAmount, minOrder, creatorType, kernel.NewUUID(), targetType, targetID, nil, nil, true)
	require.NoError(t, err)
	return d
}

func cartItems(t *testing.T, lines map[string]int) []order.Item {
	t.Helper()

	items := make([]order.Item, 0, len(lines))
	for price, qty := range lines {
		productID := kernel.NewUUID()
		item, err := order.NewItem(&productID, "item", money(t, price), qty, false)
		require.NoError(t, err)
		items = append(items, item)
	}
	return items
}

func TestDiscountResolver_PercentageCapApplies(t *testing.T) {
	resolver := services.NewDiscountResolver()

	capped := buildDiscount(t, discount.KindPercentage, 10, moneyPtr(t, "40.00"), nil,
		discount.CreatorAdmin, discount.TargetGlobal, nil)

	selection := resolver.Resolve([]*discount.DiscountRule{capped},
		money(t, "500.00"), nil, time.Now())

	require.NotNil(t, selection.Platform)
	assert.Equal(t, "40.00", selection.Platform.Amount.String())
	assert.Nil(t, selection.Shop)
}

func TestDiscountResolver_OneWinnerPerCreatorType(t *testing.T) {
	resolver := services.NewDiscountResolver()

	shopSmall := buildDiscount(t, discount.KindFlat, 20, nil, nil,
		discount.CreatorShop, discount.TargetGlobal, nil)
	shopBig := buildDiscount(t, discount.KindFlat, 50, nil, nil,
		discount.CreatorShop, discount.TargetGlobal, nil)
	adminOnly := buildDiscount(t, discount.KindFlat, 30, nil, nil,
		discount.CreatorAdmin, discount.TargetGlobal, nil)

	selection := resolver.Resolve([]*discount.DiscountRule{shopSmall, shopBig, adminOnly},
		money(t, "500.00"), nil, time.Now())

	require.NotNil(t, selection.Shop)
	require.NotNil(t, selection.Platform)
	assert.True(t, selection.Shop.RuleID.IsEqual(shopBig.ID()))
	assert.Equal(t, "50.00", selection.Shop.Amount.String())
	assert.Equal(t, "30.00", selection.Platform.Amount.String())
	assert.Equal(t, "80.00", selection.TotalAmount().String())
}

func TestDiscountResolver_MinimumOrderSkipsRule(t *testing.T) {
	resolver := services.NewDiscountResolver()

	demanding := buildDiscount(t, discount.KindFlat, 100, nil, moneyPtr(t, "1000.00"),
		discount.CreatorShop, discount.TargetGlobal, nil)

	selection := resolver.Resolve([]*discount.DiscountRule{demanding},
		money(t, "500.00"), nil, time.Now())

	assert.Nil(t, selection.Shop)
	assert.Nil(t, selection.Platform)
	assert.Equal(t, "0.00", selection.TotalAmount().String())
}

func TestDiscountResolver_ExpiredWindowSkipsRule(t *testing.T) {
	resolver := services.NewDiscountResolver()
	now := time.Now()

	from := now.Add(-48 * time.Hour)
	until := now.Add(-24 * time.Hour)
	expired, err := discount.NewDiscountRule(kernel.NewUUID(), discount.KindFlat,
		decimal.NewFromInt(50), nil, nil, discount.CreatorAdmin, kernel.NewUUID(),
		discount.TargetGlobal, nil, &from, &until, true)
	require.NoError(t, err)

	selection := resolver.Resolve([]*discount.DiscountRule{expired},
		money(t, "500.00"), nil, now)

	assert.Nil(t, selection.Platform)
}

func TestDiscountResolver_ProductTargetUsesLineTotal(t *testing.T) {
	resolver := services.NewDiscountResolver()

	productID := kernel.NewUUID()
	targeted, err := order.NewItem(&productID, "targeted", money(t, "100.00"), 2, false)
	require.NoError(t, err)
	otherID := kernel.NewUUID()
	other, err := order.NewItem(&otherID, "other", money(t, "300.00"), 1, false)
	require.NoError(t, err)
	items := []order.Item{targeted, other}

	productDiscount := buildDiscount(t, discount.KindPercentage, 50, nil, nil,
		discount.CreatorShop, discount.TargetProduct, &productID)

	selection := resolver.Resolve([]*discount.DiscountRule{productDiscount},
		money(t, "500.00"), items, time.Now())

	// 50% of the 200.00 matching line total, not of the 500.00 subtotal.
	require.NotNil(t, selection.Shop)
	assert.Equal(t, "100.00", selection.Shop.Amount.String())
}

func TestDiscountResolver_ProductTargetWithoutMatchingLineSkips(t *testing.T) {
	resolver := services.NewDiscountResolver()

	absentProduct := kernel.NewUUID()
	productDiscount := buildDiscount(t, discount.KindFlat, 50, nil, nil,
		discount.CreatorShop, discount.TargetProduct, &absentProduct)

	selection := resolver.Resolve([]*discount.DiscountRule{productDiscount},
		money(t, "500.00"), cartItems(t, map[string]int{"500.00": 1}), time.Now())

	assert.Nil(t, selection.Shop)
}
