package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/rule"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func moneyPtr(t *testing.T, s string) *kernel.Money {
	t.Helper()
	m := money(t, s)
	return &m
}

func percent(t *testing.T, v int64) kernel.Percent {
	t.Helper()
	p, err := kernel.PercentFromInt(v)
	require.NoError(t, err)
	return p
}

func newEngine() services.PricingEngine {
	return services.NewPricingEngine(services.NewRuleResolver(), services.NewDiscountResolver())
}

// zoneDefaultRule is a zone-wide rule: fee 40 split 20/20, 10% commission,
// 300 minimum with a 60 small-order fallback.
func zoneDefaultRule(t *testing.T, zoneID kernel.UUID) *rule.DeliveryRule {
	t.Helper()
	r, err := rule.NewDeliveryRule(kernel.NewUUID(), zoneID, nil, nil,
		money(t, "40.00"), money(t, "20.00"), money(t, "20.00"),
		percent(t, 10), moneyPtr(t, "300.00"), moneyPtr(t, "60.00"), true)
	require.NoError(t, err)
	return r
}

type createOrderFixture struct {
	zoneID    kernel.UUID
	shopID    kernel.UUID
	ownerID   kernel.UUID
	productID kernel.UUID

	shops        *MockShopDirectory
	catalog      *MockProductCatalog
	ruleRepo     *MockDeliveryRuleRepository
	discountRepo *MockDiscountRuleRepository
}

func newCreateOrderFixture(t *testing.T) *createOrderFixture {
	t.Helper()

	f := &createOrderFixture{
		zoneID:       kernel.NewUUID(),
		shopID:       kernel.NewUUID(),
		ownerID:      kernel.NewUUID(),
		productID:    kernel.NewUUID(),
		shops:        new(MockShopDirectory),
		catalog:      new(MockProductCatalog),
		ruleRepo:     new(MockDeliveryRuleRepository),
		discountRepo: new(MockDiscountRuleRepository),
	}
	return f
}

func (f *createOrderFixture) shopInfo() ports.ShopInfo {
	return ports.ShopInfo{
		ID:         f.shopID,
		OwnerID:    f.ownerID,
		ZoneID:     f.zoneID,
		Categories: []string{"groceries"},
	}
}

func (f *createOrderFixture) handler(uowFactory commands.OrderUoWFactory) commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(uowFactory, f.shops, f.catalog,
		f.ruleRepo, f.discountRepo, newEngine())
}

func (f *createOrderFixture) command(t *testing.T) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), f.shopID,
		"42 Harbor Lane", nil, []commands.OrderItemInput{
			{ProductID: &f.productID, Quantity: 2},
		})
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)
	cmd := f.command(t)

	f.shops.On("Get", ctx, f.shopID).Return(f.shopInfo(), nil).Once()
	f.catalog.On("Get", ctx, f.productID).Return(ports.ProductInfo{
		ID:     f.productID,
		ShopID: f.shopID,
		Name:   "basmati rice 5kg",
		Price:  money(t, "250.00"),
	}, nil).Once()
	f.ruleRepo.On("ListActiveForZone", ctx, f.zoneID).
		Return([]*rule.DeliveryRule{zoneDefaultRule(t, f.zoneID)}, nil).Once()
	f.discountRepo.On("ListCandidates", ctx, f.zoneID, f.shopID, mock.Anything, mock.Anything).
		Return(nil, nil).Once()

	var persisted *order.Order
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				persisted = args.Get(1).(*order.Order)
			}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := f.handler(factory)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, order.StatusPending, persisted.Status())
	assert.Equal(t, "500.00", persisted.Pricing().Subtotal.String())
	assert.Equal(t, "40.00", persisted.Pricing().DeliveryFee.String())
	assert.Equal(t, "540.00", persisted.Pricing().GrandTotal.String())
	assert.Equal(t, "50.00", persisted.Pricing().CommissionAmount.String())
	assert.True(t, persisted.ZoneID().IsEqual(f.zoneID))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CustomItemKeepsClientPrice(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), f.shopID,
		"42 Harbor Lane", nil, []commands.OrderItemInput{
			{Name: "gift wrap", UnitPrice: moneyPtr(t, "350.00"), Quantity: 1, IsCustom: true},
		})
	require.NoError(t, err)

	f.shops.On("Get", ctx, f.shopID).Return(f.shopInfo(), nil).Once()
	f.ruleRepo.On("ListActiveForZone", ctx, f.zoneID).
		Return([]*rule.DeliveryRule{zoneDefaultRule(t, f.zoneID)}, nil).Once()
	f.discountRepo.On("ListCandidates", ctx, f.zoneID, f.shopID, mock.Anything, mock.Anything).
		Return(nil, nil).Once()

	var persisted *order.Order
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				persisted = args.Get(1).(*order.Order)
			}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := f.handler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, persisted)
	require.Len(t, persisted.Items(), 1)
	assert.True(t, persisted.Items()[0].IsCustom())
	assert.Equal(t, "350.00", persisted.Items()[0].UnitPrice().String())
	f.catalog.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_ProductNotFound(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)
	cmd := f.command(t)

	f.shops.On("Get", ctx, f.shopID).Return(f.shopInfo(), nil).Once()
	f.catalog.On("Get", ctx, f.productID).
		Return(ports.ProductInfo{}, errs.NewObjectNotFoundError("product", f.productID.String())).Once()

	factory := new(MockOrderUoWFactory)

	h := f.handler(factory)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_UnknownZone(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)
	cmd := f.command(t)

	f.shops.On("Get", ctx, f.shopID).
		Return(ports.ShopInfo{}, errs.NewUnknownZoneError(f.shopID.String(), "missing-zone")).Once()

	factory := new(MockOrderUoWFactory)

	h := f.handler(factory)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrUnknownZone)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_StrictMinimumBlocks(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)
	cmd := f.command(t)

	strict, err := rule.NewDeliveryRule(kernel.NewUUID(), f.zoneID, nil, nil,
		money(t, "40.00"), money(t, "20.00"), money(t, "20.00"),
		percent(t, 10), moneyPtr(t, "600.00"), nil, true)
	require.NoError(t, err)

	f.shops.On("Get", ctx, f.shopID).Return(f.shopInfo(), nil).Once()
	f.catalog.On("Get", ctx, f.productID).Return(ports.ProductInfo{
		ID: f.productID, ShopID: f.shopID, Name: "basmati rice 5kg", Price: money(t, "250.00"),
	}, nil).Once()
	f.ruleRepo.On("ListActiveForZone", ctx, f.zoneID).
		Return([]*rule.DeliveryRule{strict}, nil).Once()
	f.discountRepo.On("ListCandidates", ctx, f.zoneID, f.shopID, mock.Anything, mock.Anything).
		Return(nil, nil).Once()

	factory := new(MockOrderUoWFactory)

	h := f.handler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrMinimumOrderNotMet)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_AddErrorRollsBack(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)
	cmd := f.command(t)

	f.shops.On("Get", ctx, f.shopID).Return(f.shopInfo(), nil).Once()
	f.catalog.On("Get", ctx, f.productID).Return(ports.ProductInfo{
		ID: f.productID, ShopID: f.shopID, Name: "basmati rice 5kg", Price: money(t, "250.00"),
	}, nil).Once()
	f.ruleRepo.On("ListActiveForZone", ctx, f.zoneID).
		Return([]*rule.DeliveryRule{zoneDefaultRule(t, f.zoneID)}, nil).Once()
	f.discountRepo.On("ListCandidates", ctx, f.zoneID, f.shopID, mock.Anything, mock.Anything).
		Return(nil, nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Return(errors.New("items insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := f.handler(factory)
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)

	h := f.handler(new(MockOrderUoWFactory))
	err := h.Handle(ctx, commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}

func TestNewCreateOrderCommand_Validation(t *testing.T) {
	productID := kernel.NewUUID()

	t.Run("rejects empty items", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"42 Harbor Lane", nil, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects empty address", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"", nil, []commands.OrderItemInput{{ProductID: &productID, Quantity: 1}})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"42 Harbor Lane", nil, []commands.OrderItemInput{{ProductID: &productID, Quantity: 0}})
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects custom item without price", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"42 Harbor Lane", nil, []commands.OrderItemInput{{Name: "gift wrap", Quantity: 1, IsCustom: true}})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects catalog item without product id", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"42 Harbor Lane", nil, []commands.OrderItemInput{{Quantity: 1}})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
