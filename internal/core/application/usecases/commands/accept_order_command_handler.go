package commands

import (
	"context"

	"yumexpress/internal/core/domain/model/order"
)

// AcceptOrderCommandHandler handles the business logic for order acceptance.
// Moves a pending order to confirmed; the delivery quote is attached later,
// when the vendor marks the order ready.
//
// Example:
//
//	handler := NewAcceptOrderCommandHandler(uowFactory, dispatcher)
//	cmd, _ := NewAcceptOrderCommand(orderID, vendorID, order.RoleVendor)
//
//	updated, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order acceptance failed: %w", err)
//	}
//	// updated is now in confirmed status
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher NotificationDispatcher
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
// Requires an OrderUoWFactory for transactional persistence and a dispatcher
// for post-commit notifications.
func NewAcceptOrderCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher NotificationDispatcher,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the order acceptance command.
// Loads the order, checks that the actor is its vendor (or an admin),
// performs the transition and records the history row in the same
// transaction. The transition event is dispatched only after a successful
// commit. Returns the updated order.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) (*order.Order, error) {
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

	if err = authorizeVendorAction(aggregate, cmd.ActorRole(), cmd.ActorID(), "accept order"); err != nil {
		return nil, err
	}

	actorID := cmd.ActorID()
	if err = aggregate.Confirm(cmd.ActorRole(), &actorID); err != nil {
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
