package order

import (
	"fmt"

	"yumexpress/internal/pkg/errs"
)

// PaymentStatus tracks the payment side of an order independently of the
// delivery lifecycle. Delivery transitions never depend on it; it is carried
// so that notifications and reports can show whether an order was paid.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentUnpaid is the initial payment status of a new order.
	PaymentUnpaid

	// PaymentPending indicates a payment attempt is in progress.
	PaymentPending

	// PaymentPaid indicates the order has been paid for.
	PaymentPaid

	// PaymentRefunded indicates a completed payment was returned.
	PaymentRefunded

	// PaymentFailed indicates the last payment attempt did not succeed.
	PaymentFailed
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:  "unknown",
		PaymentUnpaid:   "unpaid",
		PaymentPending:  "pending",
		PaymentPaid:     "paid",
		PaymentRefunded: "refunded",
		PaymentFailed:   "failed",
	}
}

func getValidPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // PaymentUnknown is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		PaymentUnpaid:   "unpaid",
		PaymentPending:  "pending",
		PaymentPaid:     "paid",
		PaymentRefunded: "refunded",
		PaymentFailed:   "failed",
	}
}

// PaymentStatusFromString parses a persisted payment status string.
func PaymentStatusFromString(value string) (PaymentStatus, error) {
	for status, str := range getValidPaymentStatusStrings() {
		if str == value {
			return status, nil
		}
	}

	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("payment status",
		fmt.Errorf("%q is not a valid payment status", value))
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if _, ok := getValidPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the lowercase persisted name of the payment status.
// This method implements the fmt.Stringer interface.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
