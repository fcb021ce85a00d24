package commands

import (
	"context"
	"time"

	"yumexpress/internal/core/domain/model/order"
	"yumexpress/internal/core/domain/services"
)

// MarkReadyCommandHandler moves a preparing order to ready status, pricing
// the delivery from the distance between the vendor and the delivery
// location and fixing the estimate. The resulting transition event drives
// the driver broadcast.
type MarkReadyCommandHandler struct {
	uowFactory OrderUoWFactory
	pricer     services.DeliveryPricer
	dispatcher NotificationDispatcher
}

// NewMarkReadyCommandHandler creates a handler for marking orders ready.
// Requires a pricer for the delivery quote attached on this transition.
func NewMarkReadyCommandHandler(
	uowFactory OrderUoWFactory,
	pricer services.DeliveryPricer,
	dispatcher NotificationDispatcher,
) MarkReadyCommandHandler {
	return MarkReadyCommandHandler{
		uowFactory: uowFactory,
		pricer:     pricer,
		dispatcher: dispatcher,
	}
}

// Handle processes the command. Only the order's vendor or an admin may
// mark it ready, and only from preparing status. Quotes the delivery fee
// and the estimate before the transition. Returns the updated order.
func (h *MarkReadyCommandHandler) Handle(ctx context.Context, cmd MarkReadyCommand) (*order.Order, error) {
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

	if err = authorizeVendorAction(aggregate, cmd.ActorRole(), cmd.ActorID(), "mark order ready"); err != nil {
		return nil, err
	}

	quote, err := h.pricer.Quote(aggregate.VendorLocation(), aggregate.DeliveryLocation())
	if err != nil {
		return nil, err
	}

	actorID := cmd.ActorID()
	estimatedDeliveryAt := time.Now().UTC().Add(time.Duration(quote.EtaMinutes) * time.Minute)
	if err = aggregate.MarkReady(cmd.ActorRole(), &actorID, quote.Fee, estimatedDeliveryAt); err != nil {
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
