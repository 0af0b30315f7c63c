package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/discount"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/rule"
	"marketplace/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockShopDirectory struct{ mock.Mock }

func (m *MockShopDirectory) Get(ctx context.Context, shopID kernel.UUID) (ports.ShopInfo, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).(ports.ShopInfo), args.Error(1)
}

type MockProductCatalog struct{ mock.Mock }

func (m *MockProductCatalog) Get(ctx context.Context, productID kernel.UUID) (ports.ProductInfo, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(ports.ProductInfo), args.Error(1)
}

type MockDeliveryRuleRepository struct{ mock.Mock }

func (m *MockDeliveryRuleRepository) ListActiveForZone(ctx context.Context, zoneID kernel.UUID) ([]*rule.DeliveryRule, error) {
	args := m.Called(ctx, zoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rule.DeliveryRule), args.Error(1)
}

type MockDiscountRuleRepository struct{ mock.Mock }

func (m *MockDiscountRuleRepository) ListCandidates(
	ctx context.Context,
	zoneID kernel.UUID,
	shopID kernel.UUID,
	productIDs []kernel.UUID,
	now time.Time,
) ([]*discount.DiscountRule, error) {
	args := m.Called(ctx, zoneID, shopID, productIDs, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*discount.DiscountRule), args.Error(1)
}

func (m *MockDiscountRuleRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
