package driver

import (
	"errors"

	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/pkg/errs"
	"yumexpress/internal/pkg/guard"
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPhoneIsRequired is returned when attempting to create a driver without a phone number.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

// Driver represents a delivery driver in the system.
// It is an aggregate root that manages driver identity, availability and
// last known position.
//
// Key responsibilities:
//   - Managing driver identity (ID, name, phone, email)
//   - Tracking availability for the ready-order broadcast
//   - Tracking the driver's last reported position
//
// Business rules:
//   - Driver must have a valid UUID, non-empty name and phone number
//   - Only available drivers are notified about orders becoming ready
//   - Availability is toggled off while a driver is carrying an order
//
// Example usage:
//
//	d, err := NewDriver(kernel.NewUUID(), "Juma Hassan", "+255712345678", "juma@example.com")
//	if err != nil {
//	    // Handle construction error
//	}
type Driver struct {
	// id uniquely identifies the driver
	id kernel.UUID
	// name is the human-readable name of the driver
	name string
	// phone is the driver's contact number, used for SMS notifications
	phone string
	// email is the driver's contact email (may be empty)
	email string
	// isAvailable reports whether the driver can take new orders
	isAvailable bool
	// location is the driver's last reported position (nil until reported)
	location *kernel.GeoPoint
	// guard ensures the driver was properly constructed
	guard guard.ConstructorGuard
}

// NewDriver creates a new Driver with the specified parameters.
// This is the only way to create a fresh Driver instance.
//
// New drivers start available and without a known position.
//
// Parameters:
//   - id: Unique identifier for the driver (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//   - phone: Contact number for SMS notifications (must be non-empty)
//   - email: Contact email (may be empty)
//
// Returns:
//   - *Driver: A fully initialized driver ready for operations
//   - error: Validation error if any parameter is invalid
func NewDriver(id kernel.UUID, name, phone, email string) (*Driver, error) {
	d := &Driver{
		isAvailable: true,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setPhone(phone),
	); err != nil {
		return nil, err
	}

	d.email = email
	return d, nil
}

// RestoreDriver reconstructs a Driver aggregate from persistent storage.
// Unlike NewDriver, which creates fresh available drivers, this constructor
// restores a driver to its previously persisted state, including availability
// and last reported position.
func RestoreDriver(
	id kernel.UUID,
	name, phone, email string,
	isAvailable bool,
	location *kernel.GeoPoint,
) (*Driver, error) {
	d := &Driver{
		isAvailable: isAvailable,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setPhone(phone),
		d.setLocation(location),
	); err != nil {
		return nil, err
	}

	d.email = email
	return d, nil
}

// Validate checks if the Driver was properly constructed using a constructor.
// The zero value of Driver is invalid and will fail this validation.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares two drivers for equality based on their unique identifiers.
func (d *Driver) IsEqual(other *Driver) bool {
	if other == nil {
		return false
	}
	return d.id.IsEqual(other.id)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's human-readable name.
func (d *Driver) Name() string {
	return d.name
}

// Phone returns the driver's contact number.
func (d *Driver) Phone() string {
	return d.phone
}

// Email returns the driver's contact email, which may be empty.
func (d *Driver) Email() string {
	return d.email
}

// IsAvailable reports whether the driver can take new orders.
func (d *Driver) IsAvailable() bool {
	return d.isAvailable
}

// Location returns the driver's last reported position.
// Returns nil if the driver has never reported a position.
func (d *Driver) Location() *kernel.GeoPoint {
	return d.location
}

// SetAvailable marks the driver as free to take new orders.
func (d *Driver) SetAvailable() {
	d.isAvailable = true
}

// SetBusy marks the driver as occupied with a delivery. Busy drivers are
// excluded from the ready-order broadcast.
func (d *Driver) SetBusy() {
	d.isAvailable = false
}

// UpdateLocation records the driver's current position.
func (d *Driver) UpdateLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	d.location = &location
	return nil
}

// setID validates and sets the driver's unique identifier.
// This is a private method used only during construction.
func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

// setName validates and sets the driver's name.
func (d *Driver) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

// setPhone validates and sets the driver's contact number.
func (d *Driver) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	d.phone = phone
	return nil
}

// setLocation validates and sets the last reported position, which may be nil.
func (d *Driver) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	d.location = location
	return nil
}
