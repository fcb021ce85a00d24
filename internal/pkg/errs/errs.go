package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification via errors.Is.
var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrValueIsInvalid     = errors.New("value is invalid")
	ErrValueIsOutOfRange  = errors.New("value is out of range")
	ErrValueIsRequired    = errors.New("value is required")
	ErrVersionIsInvalid   = errors.New("version is invalid")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrForbidden          = errors.New("operation is forbidden")
	ErrAlreadyClaimed     = errors.New("order is already claimed")
	ErrPreconditionFailed = errors.New("precondition failed")
)

// sanitize strips line breaks from formatted messages so errors stay
// single-line in logs.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

// ObjectNotFoundError is returned when a requested object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an
// underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrObjectNotFound, e.Cause}
	}
	return []error{ErrObjectNotFound}
}

// ValueIsInvalidError is returned when a supplied value fails validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an
// underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrValueIsInvalid, e.Cause}
	}
	return []error{ErrValueIsInvalid}
}

// ValueIsOutOfRangeError is returned when a value falls outside its allowed
// bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without a cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping
// an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v (cause: %s)",
			ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max))
}

func (e *ValueIsOutOfRangeError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrValueIsOutOfRange, e.Cause}
	}
	return []error{ErrValueIsOutOfRange}
}

// ValueIsRequiredError is returned when a mandatory value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an
// underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrValueIsRequired, e.Cause}
	}
	return []error{ErrValueIsRequired}
}

// VersionIsInvalidError is returned when an aggregate version check fails.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError wrapping an
// underlying cause.
func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError without a
// cause.
func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName))
}

func (e *VersionIsInvalidError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrVersionIsInvalid, e.Cause}
	}
	return []error{ErrVersionIsInvalid}
}

// InvalidTransitionError is returned when an order status change does not
// match any edge of the lifecycle state machine. It carries both the current
// and the requested status so callers can report the exact rejected edge.
type InvalidTransitionError struct {
	From string
	To   string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the
// rejected edge from -> to.
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ForbiddenError is returned when the calling actor's role or ownership does
// not permit the requested operation.
type ForbiddenError struct {
	Role   string
	Action string
}

// NewForbiddenError creates a ForbiddenError for the given actor role and
// attempted action.
func NewForbiddenError(role, action string) *ForbiddenError {
	return &ForbiddenError{Role: role, Action: action}
}

func (e *ForbiddenError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s may not %s", ErrForbidden, e.Role, e.Action))
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// AlreadyClaimedError is returned when a driver loses the claim race for a
// ready order. It is distinct from ObjectNotFoundError so clients can tell
// "someone else picked this up" apart from "order does not exist".
type AlreadyClaimedError struct {
	OrderID string
}

// NewAlreadyClaimedError creates an AlreadyClaimedError for the given order.
func NewAlreadyClaimedError(orderID string) *AlreadyClaimedError {
	return &AlreadyClaimedError{OrderID: orderID}
}

func (e *AlreadyClaimedError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s", ErrAlreadyClaimed, e.OrderID))
}

func (e *AlreadyClaimedError) Unwrap() error {
	return ErrAlreadyClaimed
}

// PreconditionFailedError is returned when a transition's business
// precondition does not hold, such as an unsettled payment or an unavailable
// driver.
type PreconditionFailedError struct {
	ParamName string
	Cause     error
}

// NewPreconditionFailedError creates a PreconditionFailedError without a
// cause.
func NewPreconditionFailedError(paramName string) *PreconditionFailedError {
	return &PreconditionFailedError{ParamName: paramName}
}

// NewPreconditionFailedErrorWithCause creates a PreconditionFailedError
// wrapping an underlying cause.
func NewPreconditionFailedErrorWithCause(paramName string, cause error) *PreconditionFailedError {
	return &PreconditionFailedError{ParamName: paramName, Cause: cause}
}

func (e *PreconditionFailedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrPreconditionFailed, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrPreconditionFailed, e.ParamName))
}

func (e *PreconditionFailedError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrPreconditionFailed, e.Cause}
	}
	return []error{ErrPreconditionFailed}
}
