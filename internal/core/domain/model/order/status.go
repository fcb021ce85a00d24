package order

import (
	"fmt"

	"yumexpress/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct delivery workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Preparing ──> Ready ──> PickedUp ──> InTransit ──> Delivered
//	   │                                                  │                        ▲
//	   └──> Cancelled                                     └────────────────────────┘
//
// PickedUp may move straight to Delivered when the driver never reports
// a location during the trip.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first placed.
	// Orders in this status are waiting for the vendor to accept or reject.
	Pending

	// Confirmed indicates the vendor has accepted the order.
	Confirmed

	// Preparing indicates the vendor has started preparing the order.
	Preparing

	// Ready indicates the order is prepared and waiting for a driver
	// to claim it for delivery.
	Ready

	// PickedUp indicates a driver has claimed the order and collected it
	// from the vendor.
	PickedUp

	// InTransit indicates the driver is moving towards the customer.
	// Orders enter this status implicitly on the first driver location
	// update after pickup.
	InTransit

	// Delivered indicates the order has reached the customer.
	// This is a final state with no further transitions allowed.
	Delivered

	// Cancelled indicates the order was called off before confirmation.
	// This is a final state with no further transitions allowed.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Confirmed: "confirmed",
		Preparing: "preparing",
		Ready:     "ready",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Confirmed: "confirmed",
		Preparing: "preparing",
		Ready:     "ready",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// getTransitions returns the allowed forward edges of the status machine.
// A status absent from the map is terminal.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Confirmed, Cancelled},
		Confirmed: {Preparing},
		Preparing: {Ready},
		Ready:     {PickedUp},
		PickedUp:  {InTransit, Delivered},
		InTransit: {Delivered},
	}
}

// StatusFromString parses a persisted status string back into a Status.
//
// Returns:
//   - the matching Status for a known lowercase name
//   - error if the string does not name a valid status
//
// This function is used when restoring orders from the database or
// parsing status values from external requests.
func StatusFromString(value string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == value {
			return status, nil
		}
	}

	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", value))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Confirmed, Preparing, Ready, PickedUp,
// InTransit, Delivered, Cancelled. Unknown (0) and any other values
// are invalid.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase persisted name of the status.
//
// Returns:
//   - "pending", "confirmed", ... for valid statuses
//   - "unknown" for invalid status values
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are possible
// from this status. Delivered and Cancelled are terminal.
func (s Status) IsTerminal() bool {
	if s.Validate() != nil {
		return false
	}

	_, hasEdges := getTransitions()[s]
	return !hasEdges
}

// CanTransitionTo reports whether the state machine permits moving
// from the current status to the target status.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo moves the status along an allowed edge of the state machine.
//
// Returns:
//   - (target, nil) on a valid transition
//   - (Unknown, error) if the edge is not allowed from the current status
//
// The returned error wraps errs.ErrInvalidTransition and names both
// endpoints, so callers can map it to a conflict response.
//
// Example:
//
//	next, err := currentStatus.TransitionTo(order.Confirmed)
//	if err != nil {
//	    // Handle invalid transition
//	}
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), target.String())
	}

	return target, nil
}
