package cmd

import (
	"log/slog"

	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/directoryrepo"
	"marketplace/internal/adapters/out/postgres/discountrepo"
	"marketplace/internal/adapters/out/postgres/rulerepo"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services and use-case handlers.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	shops        *directoryrepo.GormShopDirectory
	catalog      *directoryrepo.GormProductCatalog
	ruleRepo     *rulerepo.GormDeliveryRuleRepository
	discountRepo *discountrepo.GormDiscountRuleRepository

	engine services.PricingEngine
}

// NewCompositionRoot builds the object graph over one database handle.
func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:       gormDB,
		uowFactory:   postgres.NewGormUnitOfWorkFactory(gormDB),
		shops:        directoryrepo.NewGormShopDirectory(gormDB),
		catalog:      directoryrepo.NewGormProductCatalog(gormDB),
		ruleRepo:     rulerepo.NewGormDeliveryRuleRepository(gormDB),
		discountRepo: discountrepo.NewGormDiscountRuleRepository(gormDB),
		engine:       services.NewPricingEngine(services.NewRuleResolver(), services.NewDiscountResolver()),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// CreateCreateOrderCommandHandler wires the order creation use case.
func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(), c.shops, c.catalog, c.ruleRepo, c.discountRepo, c.engine)
}

// CreateUpdateOrderStatusCommandHandler wires the status transition use case.
func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.shops)
}

// CreateAdminOverrideStatusCommandHandler wires the admin override use case.
func (c *CompositionRoot) CreateAdminOverrideStatusCommandHandler() commands.AdminOverrideStatusCommandHandler {
	return commands.NewAdminOverrideStatusCommandHandler(c.orderUoWFactory())
}

// CreateCalculatePreviewQueryHandler wires the pricing preview.
func (c *CompositionRoot) CreateCalculatePreviewQueryHandler() queries.CalculatePreviewQueryHandler {
	return queries.NewCalculatePreviewQueryHandler(
		c.shops, c.catalog, c.ruleRepo, c.discountRepo, c.engine)
}

// CreateGetOrderQueryHandler wires the order read model.
func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

// CreateJobManager wires the scheduled background jobs.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.discountRepo, logger)
}

// FuncOrderUoWFactory adapts a closure to the commands.OrderUoWFactory interface.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
