package commands

import (
	"context"

	"yumexpress/internal/core/domain/model/order"
)

// MarkDeliveredCommandHandler completes a delivery. The order becomes
// delivered and the driver becomes available for new orders again.
type MarkDeliveredCommandHandler struct {
	uowFactory UoWFactory
	dispatcher NotificationDispatcher
}

// NewMarkDeliveredCommandHandler creates a handler for delivery completion.
func NewMarkDeliveredCommandHandler(
	uowFactory UoWFactory,
	dispatcher NotificationDispatcher,
) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the delivery completion. Only the driver attached to the
// order may complete it, from picked_up or in_transit status. Returns the
// delivered order.
func (h *MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = authorizeAssignedDriver(aggregate, order.RoleDriver, cmd.DriverID(), "complete delivery"); err != nil {
		return nil, err
	}

	driverID := cmd.DriverID()
	if err = aggregate.Deliver(order.RoleDriver, &driverID); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	events := aggregate.PopEvents()
	for _, event := range events {
		if err = orderRepo.AppendHistory(ctx, order.NewStatusHistory(event)); err != nil {
			return nil, err
		}
	}

	driverRepo := uow.DriverRepository()
	assignedDriver, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}
	assignedDriver.SetAvailable()
	if err = driverRepo.Update(ctx, assignedDriver); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	for _, event := range events {
		h.dispatcher.Dispatch(ctx, event)
	}

	return aggregate, nil
}
