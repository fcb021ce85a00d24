package commands

import (
	"errors"

	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/pkg/guard"
)

var ErrUpdateLocationCommandIsNotConstructed = errors.New(
	"UpdateLocationCommand must be created via NewUpdateLocationCommand constructor",
)

// UpdateLocationCommand represents a driver reporting their position while
// carrying an order. The first report after pickup moves the order to
// in_transit; later reports only refresh the coordinates.
type UpdateLocationCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID kernel.UUID
	location kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateLocationCommand creates a command carrying a driver position report.
func NewUpdateLocationCommand(
	orderID, driverID kernel.UUID,
	location kernel.GeoPoint,
) (UpdateLocationCommand, error) {
	cmd := UpdateLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDriverID(driverID),
		cmd.setLocation(location),
	); err != nil {
		return UpdateLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being delivered.
func (c UpdateLocationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the identity of the reporting driver.
func (c UpdateLocationCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Location returns the reported position.
func (c UpdateLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *UpdateLocationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateLocationCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *UpdateLocationCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
