package commands

import (
	"errors"

	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/core/domain/model/order"
	"yumexpress/internal/pkg/guard"
)

var ErrMarkReadyCommandIsNotConstructed = errors.New(
	"MarkReadyCommand must be created via NewMarkReadyCommand constructor",
)

// MarkReadyCommand represents a vendor's request to mark a preparing order
// as ready for pickup. Once ready, the order is broadcast to available
// drivers for claiming.
type MarkReadyCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actorID   kernel.UUID
	actorRole order.ActorRole

	guard guard.ConstructorGuard
}

// NewMarkReadyCommand creates a command to mark an order ready.
func NewMarkReadyCommand(orderID, actorID kernel.UUID, actorRole order.ActorRole) (MarkReadyCommand, error) {
	cmd := MarkReadyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setActorRole(actorRole),
	); err != nil {
		return MarkReadyCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkReadyCommandIsNotConstructed)
}

// OrderID returns the identifier of the order.
func (c MarkReadyCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the identity of the acting vendor.
func (c MarkReadyCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role of the actor.
func (c MarkReadyCommand) ActorRole() order.ActorRole {
	return c.actorRole
}

func (c *MarkReadyCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *MarkReadyCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *MarkReadyCommand) setActorRole(actorRole order.ActorRole) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorRole = actorRole
	return nil
}
