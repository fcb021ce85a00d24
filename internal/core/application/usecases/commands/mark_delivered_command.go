package commands

import (
	"errors"

	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand represents the assigned driver completing a delivery.
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates a command to complete a delivery.
func NewMarkDeliveredCommand(orderID, driverID kernel.UUID) (MarkDeliveredCommand, error) {
	cmd := MarkDeliveredCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDriverID(driverID),
	); err != nil {
		return MarkDeliveredCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

// OrderID returns the identifier of the delivered order.
func (c MarkDeliveredCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the identity of the delivering driver.
func (c MarkDeliveredCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *MarkDeliveredCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *MarkDeliveredCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}
