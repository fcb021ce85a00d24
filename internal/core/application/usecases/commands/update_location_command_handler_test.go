package commands_test

import (
	"testing"

	"yumexpress/internal/core/application/usecases/commands"
	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/core/domain/model/order"
	"yumexpress/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateLocationCommandHandler_Handle_FirstReportStartsTransit(t *testing.T) {
	ctx := t.Context()
	driverEntity := newTestDriver(t)
	driverID := driverEntity.ID()
	aggregate := restoreOrder(t, order.PickedUp, &driverID)
	position, err := kernel.NewGeoPoint(-6.8000, 39.2500)
	require.NoError(t, err)
	cmd, err := commands.NewUpdateLocationCommand(aggregate.ID(), driverID, position)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderRepo.On("AppendHistory", ctx, mock.AnythingOfType("order.StatusHistory")).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Get", ctx, driverID).Return(driverEntity, nil).Once(),
		driverRepo.On("Update", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", ctx, mock.AnythingOfType("order.TransitionEvent")).Once()

	handler := commands.NewUpdateLocationCommandHandler(factory, dispatcher)
	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.InTransit, aggregate.Status())
	require.NotNil(t, aggregate.DriverLocation())
	require.NotNil(t, driverEntity.Location())
	uow.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestUpdateLocationCommandHandler_Handle_RepeatReportNoHistory(t *testing.T) {
	ctx := t.Context()
	driverEntity := newTestDriver(t)
	driverID := driverEntity.ID()
	aggregate := restoreOrder(t, order.InTransit, &driverID)
	position, err := kernel.NewGeoPoint(-6.8100, 39.2600)
	require.NoError(t, err)
	cmd, err := commands.NewUpdateLocationCommand(aggregate.ID(), driverID, position)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("DriverRepository").Return(driverRepo).Once()
	driverRepo.On("Get", ctx, driverID).Return(driverEntity, nil).Once()
	driverRepo.On("Update", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockDispatcher)

	handler := commands.NewUpdateLocationCommandHandler(factory, dispatcher)
	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.InTransit, aggregate.Status())
	orderRepo.AssertNotCalled(t, "AppendHistory", mock.Anything, mock.Anything)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestUpdateLocationCommandHandler_Handle_ForbiddenForOtherDriver(t *testing.T) {
	ctx := t.Context()
	assignedDriver := kernel.NewUUID()
	aggregate := restoreOrder(t, order.PickedUp, &assignedDriver)
	position, err := kernel.NewGeoPoint(-6.8000, 39.2500)
	require.NoError(t, err)
	cmd, err := commands.NewUpdateLocationCommand(aggregate.ID(), kernel.NewUUID(), position)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateLocationCommandHandler(factory, new(MockDispatcher))
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, order.PickedUp, aggregate.Status())
}
