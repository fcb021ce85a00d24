package commands

import (
	"errors"

	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/core/domain/model/order"
	"yumexpress/internal/pkg/guard"
)

var ErrStartPreparingCommandIsNotConstructed = errors.New(
	"StartPreparingCommand must be created via NewStartPreparingCommand constructor",
)

// StartPreparingCommand represents a vendor's request to mark a confirmed
// order as being prepared.
type StartPreparingCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actorID   kernel.UUID
	actorRole order.ActorRole

	guard guard.ConstructorGuard
}

// NewStartPreparingCommand creates a command to start order preparation.
func NewStartPreparingCommand(orderID, actorID kernel.UUID, actorRole order.ActorRole) (StartPreparingCommand, error) {
	cmd := StartPreparingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setActorRole(actorRole),
	); err != nil {
		return StartPreparingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartPreparingCommand) Validate() error {
	return c.guard.Validate(ErrStartPreparingCommandIsNotConstructed)
}

// OrderID returns the identifier of the order.
func (c StartPreparingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the identity of the acting vendor.
func (c StartPreparingCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role of the actor.
func (c StartPreparingCommand) ActorRole() order.ActorRole {
	return c.actorRole
}

func (c *StartPreparingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *StartPreparingCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *StartPreparingCommand) setActorRole(actorRole order.ActorRole) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorRole = actorRole
	return nil
}
