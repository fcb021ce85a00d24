package commands

import (
	"context"

	"yumexpress/internal/core/domain/model/order"
)

// RejectOrderCommandHandler handles cancellation of pending orders.
// Cancellation is only possible before the vendor confirms; the payment
// status never blocks it, refunds are settled out of band.
type RejectOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher NotificationDispatcher
}

// NewRejectOrderCommandHandler creates a handler for order rejection.
func NewRejectOrderCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher NotificationDispatcher,
) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the order rejection command.
// Loads the order, checks that the actor owns it (customer or vendor side)
// or is an admin, performs the transition and records the history row in the
// same transaction. Returns the cancelled order.
func (h *RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) (*order.Order, error) {
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

	if err = authorizeCancelAction(aggregate, cmd.ActorRole(), cmd.ActorID(), "cancel order"); err != nil {
		return nil, err
	}

	actorID := cmd.ActorID()
	if err = aggregate.Cancel(cmd.ActorRole(), &actorID, cmd.Reason()); err != nil {
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
