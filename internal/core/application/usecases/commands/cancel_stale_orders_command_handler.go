package commands

import (
	"context"
	"time"

	"yumexpress/internal/core/domain/model/order"
)

// staleCancellationNote is recorded in the history of every system-cancelled order.
const staleCancellationNote = "cancelled automatically: vendor did not respond"

// CancelStaleOrdersCommandHandler cancels unpaid pending orders older than
// the configured age. Runs on a schedule with the system actor; paid pending
// orders are left for a human to resolve, since cancelling them silently
// would swallow money.
type CancelStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher NotificationDispatcher
}

// NewCancelStaleOrdersCommandHandler creates a handler for the stale order sweep.
func NewCancelStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher NotificationDispatcher,
) CancelStaleOrdersCommandHandler {
	return CancelStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle cancels every unpaid pending order created before now minus the
// command's max age. All cancellations commit in one transaction.
//
// Returns the number of orders cancelled.
func (h *CancelStaleOrdersCommandHandler) Handle(ctx context.Context, cmd CancelStaleOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	cutoff := time.Now().UTC().Add(-cmd.MaxAge())
	staleOrders, err := orderRepo.GetAllStalePending(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	var dispatchable []order.TransitionEvent
	cancelled := 0
	for _, aggregate := range staleOrders {
		if aggregate.PaymentStatus() != order.PaymentUnpaid {
			continue
		}

		if err = aggregate.Cancel(order.RoleSystem, nil, staleCancellationNote); err != nil {
			return 0, err
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return 0, err
		}

		events := aggregate.PopEvents()
		for _, event := range events {
			if err = orderRepo.AppendHistory(ctx, order.NewStatusHistory(event)); err != nil {
				return 0, err
			}
		}

		dispatchable = append(dispatchable, events...)
		cancelled++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, event := range dispatchable {
		h.dispatcher.Dispatch(ctx, event)
	}

	return cancelled, nil
}
