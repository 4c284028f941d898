package cmd

import (
	"log/slog"

	"orderboard/internal/adapters/out/postgres"
	"orderboard/internal/adapters/out/postgres/menurepo"
	"orderboard/internal/adapters/out/postgres/orderrepo"
	"orderboard/internal/core/application/usecases/commands"
	"orderboard/internal/core/application/usecases/queries"
	"orderboard/internal/core/domain/services"
	"orderboard/internal/core/ports"
	"orderboard/internal/realtime"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	registry    *realtime.Registry
	broadcaster *realtime.Broadcaster
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	registry := realtime.NewRegistry()
	broadcaster := realtime.NewBroadcaster(
		registry,
		queries.NewGetKitchenQueueQueryHandler(gormDB),
		queries.NewGetAnalyticsQueryHandler(gormDB),
		logger,
	)

	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:    registry,
		broadcaster: broadcaster,
	}
}

func (c *CompositionRoot) Registry() *realtime.Registry {
	return c.registry
}

func (c *CompositionRoot) Broadcaster() *realtime.Broadcaster {
	return c.broadcaster
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	menuRepo := menurepo.NewGormMenuItemRepository(c.gormDB)
	return commands.NewCheckoutCommandHandler(f, menuRepo, services.NewIdentifierAllocator(), c.broadcaster)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.broadcaster)
}

func (c *CompositionRoot) CreateGetAnalyticsQueryHandler() queries.GetAnalyticsQueryHandler {
	return queries.NewGetAnalyticsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetKitchenQueueQueryHandler() queries.GetKitchenQueueQueryHandler {
	return queries.NewGetKitchenQueueQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserOrdersQueryHandler() queries.GetUserOrdersQueryHandler {
	return queries.NewGetUserOrdersQueryHandler(c.gormDB)
}

// CreateOrderReadRepository returns an order repository outside any unit of
// work, for the lookup endpoints that read a single aggregate.
func (c *CompositionRoot) CreateOrderReadRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(c.gormDB, readOnlyTracker{})
}

// readOnlyTracker satisfies the repository's tracker without recording
// anything; reads outside a unit of work have no change set to join.
type readOnlyTracker struct{}

func (readOnlyTracker) TrackAggregate(int64, any) {}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
