package cmd

import (
	httpin "yumexpress/internal/adapters/in/http"
	"yumexpress/internal/adapters/out/postgres"
	"yumexpress/internal/core/application/usecases/commands"
	"yumexpress/internal/core/application/usecases/queries"
	"yumexpress/internal/core/domain/services"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	pricer     services.DeliveryPricer
	dispatcher commands.NotificationDispatcher
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, dispatcher commands.NotificationDispatcher) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		pricer:     services.NewDeliveryPricer(config.BasePrepMinutes),
		dispatcher: dispatcher,
	}
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectOrderCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateStartPreparingCommandHandler() commands.StartPreparingCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartPreparingCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateMarkReadyCommandHandler() commands.MarkReadyCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkReadyCommandHandler(f, c.pricer, c.dispatcher)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimOrderCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateUpdateLocationCommandHandler() commands.UpdateLocationCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateLocationCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkDeliveredCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateCancelStaleOrdersCommandHandler() commands.CancelStaleOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelStaleOrdersCommandHandler(f, c.dispatcher)
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreatePreviewDeliveryFeeQueryHandler() queries.PreviewDeliveryFeeQueryHandler {
	return queries.NewPreviewDeliveryFeeQueryHandler(c.pricer)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	acceptOrder := c.CreateAcceptOrderCommandHandler()
	rejectOrder := c.CreateRejectOrderCommandHandler()
	startPreparing := c.CreateStartPreparingCommandHandler()
	markReady := c.CreateMarkReadyCommandHandler()
	claimOrder := c.CreateClaimOrderCommandHandler()
	updateLocation := c.CreateUpdateLocationCommandHandler()
	markDelivered := c.CreateMarkDeliveredCommandHandler()
	availableOrders := c.CreateGetAvailableOrdersQueryHandler()
	orderHistory := c.CreateGetOrderHistoryQueryHandler()
	previewDelivery := c.CreatePreviewDeliveryFeeQueryHandler()

	return httpin.NewServer(
		&acceptOrder,
		&rejectOrder,
		&startPreparing,
		&markReady,
		&claimOrder,
		&updateLocation,
		&markDelivered,
		availableOrders,
		orderHistory,
		previewDelivery,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
