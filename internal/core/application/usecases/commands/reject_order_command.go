package commands

import (
	"errors"

	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/core/domain/model/order"
	"yumexpress/internal/pkg/guard"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// RejectOrderCommand represents a request to call off a pending order.
// Both the customer and the vendor of the order may reject it; the optional
// reason is recorded in the status history.
type RejectOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actorID   kernel.UUID
	actorRole order.ActorRole
	reason    string

	guard guard.ConstructorGuard
}

// NewRejectOrderCommand creates a command to cancel a pending order.
// The reason may be empty.
func NewRejectOrderCommand(
	orderID, actorID kernel.UUID,
	actorRole order.ActorRole,
	reason string,
) (RejectOrderCommand, error) {
	cmd := RejectOrderCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setActorRole(actorRole),
	); err != nil {
		return RejectOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being rejected.
func (c RejectOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the identity of the rejecting actor.
func (c RejectOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role of the rejecting actor.
func (c RejectOrderCommand) ActorRole() order.ActorRole {
	return c.actorRole
}

// Reason returns the optional cancellation reason.
func (c RejectOrderCommand) Reason() string {
	return c.reason
}

func (c *RejectOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RejectOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *RejectOrderCommand) setActorRole(actorRole order.ActorRole) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorRole = actorRole
	return nil
}
