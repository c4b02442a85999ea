package cmd

import (
	"log/slog"
	"os"

	httpadapter "lastbite/internal/adapters/in/http"
	"lastbite/internal/adapters/out/postgres"
	"lastbite/internal/adapters/out/postgres/inventoryrepo"
	"lastbite/internal/core/application/eventstream"
	"lastbite/internal/core/application/notifier"
	"lastbite/internal/core/application/usecases/commands"
	"lastbite/internal/core/application/usecases/queries"
	"lastbite/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	registry   *eventstream.Registry
	ids        *eventstream.IDGenerator
	dispatcher *notifier.Dispatcher
	streams    *notifier.StreamService
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	registry := eventstream.NewRegistry(config.EventCacheSize)
	ids := eventstream.NewIDGenerator()

	var notificationUoWFactory notifier.NotificationUoWFactory = FuncNotificationUoWFactory(func() notifier.NotificationUoW {
		return uowFactory.Create()
	})

	dispatcher := notifier.NewDispatcher(notificationUoWFactory, registry, ids, logger)
	streams := notifier.NewStreamService(registry, ids, logger)
	if config.StreamIdleTimeout > 0 {
		streams = streams.WithTimeout(config.StreamIdleTimeout)
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *uowFactory,
		registry:   registry,
		ids:        ids,
		dispatcher: dispatcher,
		streams:    streams,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	inventory := inventoryrepo.NewGormInventory(c.gormDB)
	return commands.NewCreateOrderCommandHandler(f, inventory, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateGetStoreOrdersQueryHandler() queries.GetStoreOrdersQueryHandler {
	return queries.NewGetStoreOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNotificationsQueryHandler() queries.GetNotificationsQueryHandler {
	return queries.NewGetNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateGetStoreOrdersQueryHandler(),
		c.CreateGetNotificationsQueryHandler(),
		c.streams,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.registry, c.config.EventCacheMaxAge, c.logger)
}

func (c *CompositionRoot) Registry() *eventstream.Registry {
	return c.registry
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncNotificationUoWFactory func() notifier.NotificationUoW

func (f FuncNotificationUoWFactory) Create() notifier.NotificationUoW {
	return f()
}
