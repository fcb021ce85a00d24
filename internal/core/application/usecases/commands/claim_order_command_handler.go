package commands

import (
	"context"

	"yumexpress/internal/core/domain/model/order"
	"yumexpress/internal/pkg/errs"
)

// ClaimOrderCommandHandler handles a driver claiming a ready order.
//
// The winner among concurrent claimers is decided by the repository's
// conditional update: the status and driver checks and the driver
// assignment happen in one atomic statement, so at most one claim can
// succeed no matter how many drivers race. The domain mutation runs first
// to validate the transition and produce the event; the conditional update
// then either confirms this driver won or fails the transaction.
type ClaimOrderCommandHandler struct {
	uowFactory UoWFactory
	dispatcher NotificationDispatcher
}

// NewClaimOrderCommandHandler creates a handler for order claiming.
// Requires a cross-aggregate UoWFactory because a successful claim also
// marks the driver busy.
func NewClaimOrderCommandHandler(
	uowFactory UoWFactory,
	dispatcher NotificationDispatcher,
) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the claim command and returns the claimed order.
//
// The claiming driver must be available. Returns an error wrapping
// errs.ErrPreconditionFailed for an unavailable driver,
// errs.ErrAlreadyClaimed when another driver won the race, or
// errs.ErrInvalidTransition when the order is not ready.
func (h *ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (*order.Order, error) {
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

	driverRepo := uow.DriverRepository()
	claimer, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}
	if !claimer.IsAvailable() {
		return nil, errs.NewPreconditionFailedError("driver availability")
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Claim(claimer.ID()); err != nil {
		return nil, err
	}

	// The atomic check-and-set; loses the race with a wrapped ErrAlreadyClaimed.
	if err = orderRepo.ClaimForDriver(ctx, aggregate.ID(), claimer.ID(), *aggregate.PickedUpAt()); err != nil {
		return nil, err
	}

	events := aggregate.PopEvents()
	for _, event := range events {
		if err = orderRepo.AppendHistory(ctx, order.NewStatusHistory(event)); err != nil {
			return nil, err
		}
	}

	claimer.SetBusy()
	if err = driverRepo.Update(ctx, claimer); err != nil {
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
