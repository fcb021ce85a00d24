package order

import (
	"crypto/rand"
	"errors"
	"time"

	"yumexpress/internal/core/domain/model/kernel"
	"yumexpress/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly
	// validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrDriverNotAssigned is returned when a driver-only operation is attempted
	// on an order that has no driver.
	ErrDriverNotAssigned = errors.New("order has no assigned driver")
)

// orderNumberLength is the length of generated human-facing order numbers.
const orderNumberLength = 8

// orderNumberAlphabet holds the characters order numbers are drawn from.
const orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Order represents a food delivery order. It is the aggregate root that manages
// the order lifecycle from placement through vendor preparation and driver
// delivery to completion.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and non-empty order number
//   - Customer and vendor identities are fixed at creation
//   - Status transitions follow the defined state machine
//   - Every transition is recorded exactly once in the status history
//   - The delivery estimate is set when the order becomes ready and never changes
//   - A driver is attached exactly once, at pickup
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// orderNumber is the short human-facing reference, e.g. "K7G2XQ9D"
	orderNumber string

	// customerID identifies the customer who placed the order
	customerID kernel.UUID

	// vendorID identifies the vendor preparing the order
	vendorID kernel.UUID

	// driverID is the claiming driver's ID (nil until pickup)
	driverID *kernel.UUID

	// subtotal is the price of the items before delivery
	subtotal kernel.Money

	// deliveryFee is quoted when the order is marked ready (zero before that)
	deliveryFee kernel.Money

	// vendorLocation is where the order is picked up
	vendorLocation kernel.GeoPoint

	// deliveryLocation is where the order is dropped off
	deliveryLocation kernel.GeoPoint

	// deliveryAddress is the free-text address shown to the driver
	deliveryAddress string

	// driverLocation is the driver's last reported position (nil until reported)
	driverLocation *kernel.GeoPoint

	// status represents the current state in the order lifecycle
	status Status

	// paymentStatus tracks the payment side, independent of delivery
	paymentStatus PaymentStatus

	// paymentRef is the external payment transaction reference
	paymentRef string

	createdAt           time.Time
	estimatedDeliveryAt *time.Time
	pickedUpAt          *time.Time
	deliveredAt         *time.Time

	// history is the persisted audit trail, one entry per transition
	history []StatusHistory

	// events holds transitions not yet drained by PopEvents
	events []TransitionEvent

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Pending status with validation. This is the
// only way to create a fresh order, ensuring all business invariants hold.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - orderNumber: Short human-facing reference (must be non-empty)
//   - customerID: Identity of the ordering customer
//   - vendorID: Identity of the vendor
//   - subtotal: Item total before delivery fee
//   - vendorLocation: Pickup coordinates
//   - deliveryLocation: Drop-off coordinates
//   - deliveryAddress: Free-text delivery address
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
//
// The constructor validates all inputs and ensures the order starts in
// Pending status with an unpaid payment status and no driver assigned.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	vendorID kernel.UUID,
	subtotal kernel.Money,
	vendorLocation kernel.GeoPoint,
	deliveryLocation kernel.GeoPoint,
	deliveryAddress string,
) (*Order, error) {
	zeroFee, err := kernel.ZeroMoney(subtotal.Currency())
	if err != nil {
		return nil, err
	}

	order := &Order{
		status:        Pending,
		paymentStatus: PaymentUnpaid,
		deliveryFee:   zeroFee,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setCustomerID(customerID),
		order.setVendorID(vendorID),
		order.setSubtotal(subtotal),
		order.setVendorLocation(vendorLocation),
		order.setDeliveryLocation(deliveryLocation),
		order.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder, which creates fresh pending orders, this constructor
// restores an order to its previously persisted state, including the driver
// assignment, timestamps and status history.
//
// The restored order behaves identically to one mutated through normal
// domain operations, but carries no pending transition events.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	vendorID kernel.UUID,
	driverID *kernel.UUID,
	subtotal kernel.Money,
	deliveryFee kernel.Money,
	vendorLocation kernel.GeoPoint,
	deliveryLocation kernel.GeoPoint,
	deliveryAddress string,
	driverLocation *kernel.GeoPoint,
	status Status,
	paymentStatus PaymentStatus,
	paymentRef string,
	createdAt time.Time,
	estimatedDeliveryAt *time.Time,
	pickedUpAt *time.Time,
	deliveredAt *time.Time,
	history []StatusHistory,
) (*Order, error) {
	order := &Order{
		paymentRef:          paymentRef,
		createdAt:           createdAt,
		estimatedDeliveryAt: estimatedDeliveryAt,
		pickedUpAt:          pickedUpAt,
		deliveredAt:         deliveredAt,
		history:             history,
		isConstructed:       true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setCustomerID(customerID),
		order.setVendorID(vendorID),
		order.setDriverID(driverID),
		order.setSubtotal(subtotal),
		order.setDeliveryFee(deliveryFee),
		order.setVendorLocation(vendorLocation),
		order.setDeliveryLocation(deliveryLocation),
		order.setDeliveryAddress(deliveryAddress),
		order.setDriverLocation(driverLocation),
		order.setStatus(status),
		order.setPaymentStatus(paymentStatus),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// GenerateOrderNumber produces a random order number of eight uppercase
// letters and digits, e.g. "K7G2XQ9D". Uniqueness is enforced by the
// database constraint on the order number column.
func GenerateOrderNumber() string {
	buf := make([]byte, orderNumberLength)
	_, _ = rand.Read(buf)

	for i, b := range buf {
		buf[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}

	return string(buf)
}

// Validate ensures the Order instance was properly constructed through
// NewOrder or RestoreOrder. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the short human-facing reference.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// Customer returns the ordering customer's ID.
func (o *Order) Customer() kernel.UUID {
	return o.customerID
}

// Vendor returns the vendor's ID.
func (o *Order) Vendor() kernel.UUID {
	return o.vendorID
}

// Driver returns the claiming driver's ID.
// Returns nil if no driver has claimed the order.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// Subtotal returns the item total before the delivery fee.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// DeliveryFee returns the quoted delivery fee.
// It is zero until the vendor marks the order ready.
func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

// Total returns the subtotal plus the delivery fee.
func (o *Order) Total() (kernel.Money, error) {
	return o.subtotal.Add(o.deliveryFee)
}

// VendorLocation returns the pickup coordinates.
func (o *Order) VendorLocation() kernel.GeoPoint {
	return o.vendorLocation
}

// DeliveryLocation returns the drop-off coordinates.
func (o *Order) DeliveryLocation() kernel.GeoPoint {
	return o.deliveryLocation
}

// DeliveryAddress returns the free-text delivery address.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// DriverLocation returns the driver's last reported position.
// Returns nil if the driver has not reported a position yet.
func (o *Order) DriverLocation() *kernel.GeoPoint {
	return o.driverLocation
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the current payment status of the order.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// PaymentRef returns the external payment transaction reference.
func (o *Order) PaymentRef() string {
	return o.paymentRef
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// EstimatedDeliveryAt returns the delivery estimate fixed when the order
// was marked ready. Returns nil for orders that never reached ready.
func (o *Order) EstimatedDeliveryAt() *time.Time {
	return o.estimatedDeliveryAt
}

// PickedUpAt returns when the driver claimed the order, or nil.
func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

// DeliveredAt returns when the order was delivered, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// History returns the audit trail of status transitions, oldest first.
func (o *Order) History() []StatusHistory {
	return o.history
}

// PendingEvents returns the transition events accumulated since the last
// PopEvents call without draining them. The repository reads the first
// pending event to fence its conditional update on the status the order
// transitioned from.
func (o *Order) PendingEvents() []TransitionEvent {
	return o.events
}

// PopEvents drains and returns the transition events accumulated since the
// last call. The application layer calls this after a successful commit and
// hands each event to the notification dispatcher. A second call returns nil.
func (o *Order) PopEvents() []TransitionEvent {
	events := o.events
	o.events = nil
	return events
}

// Confirm accepts the order on behalf of the vendor.
//
// This method enforces the following business rules:
//   - The order must be in Pending status and paid
//
// Parameters:
//   - actor: Role performing the confirmation (vendor or admin)
//   - actorID: Identity of the actor, nil for system actions
//
// Returns:
//   - nil on successful confirmation
//   - error if the transition is not allowed or the payment is unsettled
func (o *Order) Confirm(actor ActorRole, actorID *kernel.UUID) error {
	if err := o.requirePaidFor(Confirmed); err != nil {
		return err
	}

	return o.recordTransition(Confirmed, actor, actorID, "")
}

// Cancel calls the order off. Only pending orders can be cancelled; once the
// vendor has confirmed, the order must run to completion.
//
// Cancellation does not depend on the payment status. A paid pending order
// can still be cancelled; the refund is handled out of band.
//
// Parameters:
//   - actor: Role performing the cancellation (customer, vendor, admin or system)
//   - actorID: Identity of the actor, nil for system actions
//   - note: Optional reason recorded in the history
func (o *Order) Cancel(actor ActorRole, actorID *kernel.UUID, note string) error {
	return o.recordTransition(Cancelled, actor, actorID, note)
}

// StartPreparing marks the order as being prepared by the vendor.
// The order must be in Confirmed status and paid.
func (o *Order) StartPreparing(actor ActorRole, actorID *kernel.UUID) error {
	if err := o.requirePaidFor(Preparing); err != nil {
		return err
	}
	return o.recordTransition(Preparing, actor, actorID, "")
}

// MarkReady marks the order as prepared and attaches the delivery quote.
// Once ready, the order becomes visible to available drivers for claiming.
//
// This method enforces the following business rules:
//   - The order must be in Preparing status and paid
//   - The delivery fee currency must match the subtotal currency
//   - The delivery estimate is fixed here, only if not already set, and
//     never changes afterwards
func (o *Order) MarkReady(
	actor ActorRole,
	actorID *kernel.UUID,
	deliveryFee kernel.Money,
	estimatedDeliveryAt time.Time,
) error {
	if err := deliveryFee.Validate(); err != nil {
		return err
	}
	if deliveryFee.Currency() != o.subtotal.Currency() {
		return errs.NewValueIsInvalidErrorWithCause("delivery fee", kernel.ErrCurrencyMismatch)
	}

	if err := o.requirePaidFor(Ready); err != nil {
		return err
	}

	if err := o.recordTransition(Ready, actor, actorID, ""); err != nil {
		return err
	}

	o.deliveryFee = deliveryFee

	if o.estimatedDeliveryAt == nil {
		estimate := estimatedDeliveryAt.UTC()
		o.estimatedDeliveryAt = &estimate
	}

	return nil
}

// Claim attaches a driver to the order and marks it picked up.
//
// This method enforces the following business rules:
//   - The order must be in Ready status
//   - No driver may already be attached
//   - The pickup timestamp is recorded here
//
// Claim expresses the domain rule; the winner among concurrently claiming
// drivers is decided by the conditional update in the order repository.
//
// Parameters:
//   - driverID: The ID of the claiming driver
//
// Returns:
//   - nil on successful claim
//   - error wrapping errs.ErrAlreadyClaimed if a driver is already attached,
//     or an invalid transition error if the order is not ready
func (o *Order) Claim(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if o.driverID != nil {
		return errs.NewAlreadyClaimedError(o.id.String())
	}

	o.driverID = &driverID
	if err := o.recordTransition(PickedUp, RoleDriver, &driverID, ""); err != nil {
		o.driverID = nil
		return err
	}

	pickedUpAt := time.Now().UTC()
	o.pickedUpAt = &pickedUpAt
	return nil
}

// UpdateDriverLocation records the driver's current position.
//
// The first location update after pickup implicitly moves the order to
// InTransit, recording that transition once. Subsequent updates only refresh
// the position; they add no history entries and raise no events.
//
// Parameters:
//   - location: The driver's current coordinates
//
// Returns:
//   - nil on success
//   - ErrDriverNotAssigned if no driver has claimed the order
//   - an invalid transition error if the order is not picked up or in transit
func (o *Order) UpdateDriverLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	if o.driverID == nil {
		return ErrDriverNotAssigned
	}

	if o.status == PickedUp {
		if err := o.recordTransition(InTransit, RoleDriver, o.driverID, ""); err != nil {
			return err
		}
	} else if o.status != InTransit {
		return errs.NewInvalidTransitionError(o.status.String(), InTransit.String())
	}

	o.driverLocation = &location
	return nil
}

// Deliver marks the order as delivered to the customer.
//
// This method enforces the following business rules:
//   - The order must be in PickedUp or InTransit status; a driver who never
//     reported a location delivers straight from PickedUp
//   - A driver must be attached
//   - Delivered is a final state with no further transitions
//
// The delivery timestamp is recorded on success.
func (o *Order) Deliver(actor ActorRole, actorID *kernel.UUID) error {
	if o.driverID == nil {
		return ErrDriverNotAssigned
	}

	if err := o.recordTransition(Delivered, actor, actorID, ""); err != nil {
		return err
	}

	deliveredAt := time.Now().UTC()
	o.deliveredAt = &deliveredAt
	return nil
}

// UpdatePaymentStatus sets the payment status and transaction reference.
// Payment state is orthogonal to the delivery lifecycle and may change in
// any delivery status.
func (o *Order) UpdatePaymentStatus(status PaymentStatus, paymentRef string) error {
	if err := o.setPaymentStatus(status); err != nil {
		return err
	}

	if paymentRef != "" {
		o.paymentRef = paymentRef
	}
	return nil
}

// requirePaidFor gates the vendor-side forward edges on a settled payment.
// The transition legality is checked first so an illegal edge reports
// InvalidTransition rather than the payment state.
func (o *Order) requirePaidFor(target Status) error {
	if _, err := o.status.TransitionTo(target); err != nil {
		return err
	}
	if o.paymentStatus != PaymentPaid {
		return errs.NewPreconditionFailedError("payment")
	}
	return nil
}

// recordTransition moves the order to the target status and records the
// change exactly once in both the history and the pending event list.
func (o *Order) recordTransition(target Status, actor ActorRole, actorID *kernel.UUID, note string) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	event := TransitionEvent{
		OrderID:     o.id,
		OrderNumber: o.orderNumber,
		CustomerID:  o.customerID,
		VendorID:    o.vendorID,
		DriverID:    o.driverID,
		From:        o.status,
		To:          newStatus,
		Actor:       actor,
		ActorID:     actorID,
		Note:        note,
		OccurredAt:  time.Now().UTC(),
	}

	o.status = newStatus
	o.events = append(o.events, event)
	o.history = append(o.history, NewStatusHistory(event))
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setOrderNumber validates and sets the human-facing reference.
func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

// setCustomerID validates and sets the customer identity.
func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

// setVendorID validates and sets the vendor identity.
func (o *Order) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}
	o.vendorID = vendorID
	return nil
}

// setDriverID validates and sets the driver identity, which may be nil.
func (o *Order) setDriverID(driverID *kernel.UUID) error {
	if driverID == nil {
		return nil
	}
	if err := driverID.Validate(); err != nil {
		return err
	}
	o.driverID = driverID
	return nil
}

// setSubtotal validates and sets the item total.
func (o *Order) setSubtotal(subtotal kernel.Money) error {
	if err := subtotal.Validate(); err != nil {
		return err
	}
	o.subtotal = subtotal
	return nil
}

// setDeliveryFee validates and sets the delivery fee.
func (o *Order) setDeliveryFee(deliveryFee kernel.Money) error {
	if err := deliveryFee.Validate(); err != nil {
		return err
	}
	o.deliveryFee = deliveryFee
	return nil
}

// setVendorLocation validates and sets the pickup coordinates.
func (o *Order) setVendorLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.vendorLocation = location
	return nil
}

// setDeliveryLocation validates and sets the drop-off coordinates.
func (o *Order) setDeliveryLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.deliveryLocation = location
	return nil
}

// setDeliveryAddress validates and sets the free-text address.
func (o *Order) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryAddress = address
	return nil
}

// setDriverLocation validates and sets the last reported driver position,
// which may be nil.
func (o *Order) setDriverLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	o.driverLocation = location
	return nil
}

// setStatus validates and sets the lifecycle status.
// This is only used when restoring from persistence.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setPaymentStatus validates and sets the payment status.
func (o *Order) setPaymentStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.paymentStatus = status
	return nil
}
