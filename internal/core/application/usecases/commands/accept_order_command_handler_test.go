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

func TestAcceptOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreOrder(t, order.Pending, nil)
	cmd, err := commands.NewAcceptOrderCommand(aggregate.ID(), aggregate.Vendor(), order.RoleVendor)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderRepo.On("AppendHistory", ctx, mock.AnythingOfType("order.StatusHistory")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", ctx, mock.AnythingOfType("order.TransitionEvent")).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory, dispatcher)
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, order.Confirmed, updated.Status())
	assert.Nil(t, updated.EstimatedDeliveryAt())
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestAcceptOrderCommandHandler_Handle_ForbiddenForOtherVendor(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreOrder(t, order.Pending, nil)
	otherVendor := kernel.NewUUID()
	cmd, err := commands.NewAcceptOrderCommand(aggregate.ID(), otherVendor, order.RoleVendor)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockDispatcher)

	handler := commands.NewAcceptOrderCommandHandler(factory, dispatcher)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, order.Pending, aggregate.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestAcceptOrderCommandHandler_Handle_ForbiddenForCustomer(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreOrder(t, order.Pending, nil)
	cmd, err := commands.NewAcceptOrderCommand(aggregate.ID(), aggregate.Customer(), order.RoleCustomer)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory, new(MockDispatcher))
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestAcceptOrderCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreOrder(t, order.Ready, nil)
	cmd, err := commands.NewAcceptOrderCommand(aggregate.ID(), aggregate.Vendor(), order.RoleVendor)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockDispatcher)

	handler := commands.NewAcceptOrderCommandHandler(factory, dispatcher)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestAcceptOrderCommandHandler_Handle_UnpaidOrder(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreOrderWithPayment(t, order.Pending, nil, order.PaymentUnpaid)
	cmd, err := commands.NewAcceptOrderCommand(aggregate.ID(), aggregate.Vendor(), order.RoleVendor)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockDispatcher)

	handler := commands.NewAcceptOrderCommandHandler(factory, dispatcher)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	assert.Equal(t, order.Pending, aggregate.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestAcceptOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewAcceptOrderCommand(orderID, kernel.NewUUID(), order.RoleVendor)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, orderID).
		Return(nil, errs.NewObjectNotFoundError("order", orderID)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptOrderCommandHandler(factory, new(MockDispatcher))
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewAcceptOrderCommand_Validation(t *testing.T) {
	t.Run("should reject invalid order ID", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := commands.NewAcceptOrderCommand(invalidID, kernel.NewUUID(), order.RoleVendor)

		require.Error(t, err)
	})

	t.Run("should reject unknown role", func(t *testing.T) {
		_, err := commands.NewAcceptOrderCommand(kernel.NewUUID(), kernel.NewUUID(), order.RoleUnknown)

		require.Error(t, err)
	})

	t.Run("should reject zero value command", func(t *testing.T) {
		var cmd commands.AcceptOrderCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrAcceptOrderCommandIsNotConstructed)
	})
}
