package commands

import (
	"context"

	"yumexpress/internal/core/domain/model/order"
)

// StartPreparingCommandHandler moves a confirmed order into preparation.
type StartPreparingCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher NotificationDispatcher
}

// NewStartPreparingCommandHandler creates a handler for starting preparation.
func NewStartPreparingCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher NotificationDispatcher,
) StartPreparingCommandHandler {
	return StartPreparingCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the command. Only the order's vendor or an admin may
// start preparation, and only from confirmed status. Returns the updated
// order.
func (h *StartPreparingCommandHandler) Handle(ctx context.Context, cmd StartPreparingCommand) (*order.Order, error) {
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

	if err = authorizeVendorAction(aggregate, cmd.ActorRole(), cmd.ActorID(), "start preparing order"); err != nil {
		return nil, err
	}

	actorID := cmd.ActorID()
	if err = aggregate.StartPreparing(cmd.ActorRole(), &actorID); err != nil {
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

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	for _, event := range events {
		h.dispatcher.Dispatch(ctx, event)
	}

	return aggregate, nil
}
