package cmd

import (
	"log/slog"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/capacityrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/sectorrepo"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  commands.ChangePublisher
	logger     *slog.Logger
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	publisher commands.ChangePublisher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateAttachReviewCommandHandler() commands.AttachReviewCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAttachReviewCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateClaimSlotCommandHandler() commands.ClaimSlotCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimSlotCommandHandler(f, capacityrepo.NewGormCapacityRepository(c.gormDB), c.publisher)
}

func (c *CompositionRoot) CreateReleaseSlotCommandHandler() commands.ReleaseSlotCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseSlotCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateSweepSessionsCommandHandler() commands.SweepSessionsCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSweepSessionsCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateClaimRouteCommandHandler() commands.ClaimRouteCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimRouteCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCompleteRouteCommandHandler() commands.CompleteRouteCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteRouteCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateSetCapacityCommandHandler() commands.SetCapacityCommandHandler {
	return commands.NewSetCapacityCommandHandler(capacityrepo.NewGormCapacityRepository(c.gormDB), c.publisher)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetReadyBatchesQueryHandler() queries.GetReadyBatchesQueryHandler {
	return queries.NewGetReadyBatchesQueryHandler(
		orderrepo.NewGormOrderRepository(c.gormDB, nil),
		sectorrepo.NewGormSectorRepository(c.gormDB),
	)
}

func (c *CompositionRoot) CreateGetRouteQueryHandler() queries.GetRouteQueryHandler {
	return queries.NewGetRouteQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveDriversQueryHandler() queries.GetActiveDriversQueryHandler {
	return queries.NewGetActiveDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverHistoryQueryHandler() queries.GetDriverHistoryQueryHandler {
	return queries.NewGetDriverHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSectorsQueryHandler() queries.GetSectorsQueryHandler {
	return queries.NewGetSectorsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCapacityQueryHandler() queries.GetCapacityQueryHandler {
	return queries.NewGetCapacityQueryHandler(capacityrepo.NewGormCapacityRepository(c.gormDB))
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateSweepSessionsCommandHandler(), c.publisher, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
