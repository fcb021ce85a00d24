package commands

import (
	"errors"

	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/core/domain/model/order"
	"yumexpress/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand represents a vendor's request to accept a pending order.
// Accepting moves the order to confirmed; the delivery quote is attached
// later, when the vendor marks it ready.
//
// Example:
//
//	cmd, err := NewAcceptOrderCommand(orderID, vendorID, order.RoleVendor)
//	if err != nil {
//	    return fmt.Errorf("invalid accept request: %w", err)
//	}
//
//	handler := NewAcceptOrderCommandHandler(uowFactory, dispatcher)
//	confirmed, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to accept order: %w", err)
//	}
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actorID   kernel.UUID
	actorRole order.ActorRole

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a command to accept a pending order.
// Validates that both identifiers are valid and the role is known.
func NewAcceptOrderCommand(orderID, actorID kernel.UUID, actorRole order.ActorRole) (AcceptOrderCommand, error) {
	cmd := AcceptOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setActorRole(actorRole),
	); err != nil {
		return AcceptOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being accepted.
func (c AcceptOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the identity of the accepting actor.
func (c AcceptOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role of the accepting actor.
func (c AcceptOrderCommand) ActorRole() order.ActorRole {
	return c.actorRole
}

func (c *AcceptOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AcceptOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *AcceptOrderCommand) setActorRole(actorRole order.ActorRole) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorRole = actorRole
	return nil
}
