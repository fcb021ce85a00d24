package commands

import (
	"context"

	"yumexpress/internal/core/domain/model/order"
)

// UpdateLocationCommandHandler handles driver position reports.
// The implicit picked_up to in_transit transition goes through the same
// path as every other transition, so it is audited and dispatched exactly
// once; repeat reports update coordinates without touching the history.
type UpdateLocationCommandHandler struct {
	uowFactory UoWFactory
	dispatcher NotificationDispatcher
}

// NewUpdateLocationCommandHandler creates a handler for position reports.
func NewUpdateLocationCommandHandler(
	uowFactory UoWFactory,
	dispatcher NotificationDispatcher,
) UpdateLocationCommandHandler {
	return UpdateLocationCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the position report. Only the driver attached to the
// order may report for it. Returns the updated order.
func (h *UpdateLocationCommandHandler) Handle(ctx context.Context, cmd UpdateLocationCommand) (*order.Order, error) {
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

	if err = authorizeAssignedDriver(aggregate, order.RoleDriver, cmd.DriverID(), "report location"); err != nil {
		return nil, err
	}

	if err = aggregate.UpdateDriverLocation(cmd.Location()); err != nil {
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
	reporter, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}
	if err = reporter.UpdateLocation(cmd.Location()); err != nil {
		return nil, err
	}
	if err = driverRepo.Update(ctx, reporter); err != nil {
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
