package kernel

import (
	"errors"
	"fmt"

	"yumexpress/internal/pkg/errs"
	"yumexpress/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly
// initialized Money value. Money must be created via NewMoney or ZeroMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney or ZeroMoney constructors")

// ErrCurrencyMismatch is returned when arithmetic is attempted between
// amounts of different currencies.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// Money is a value object holding a non-negative currency amount with
// fixed-point semantics. All arithmetic goes through decimal.Decimal, so no
// floating-point drift can enter monetary calculations.
//
// Example:
//
//	subtotal, _ := kernel.NewMoney(decimal.NewFromInt(15000), "TSH")
//	fee, _ := kernel.NewMoney(decimal.NewFromInt(5000), "TSH")
//	total, _ := subtotal.Add(fee)
//	fmt.Println(total) // Output: 20000 TSH
type Money struct { //nolint:recvcheck //using for validation
	amount   decimal.Decimal
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney creates a Money value with the given amount and currency code.
// The amount must be non-negative and the currency code non-empty.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	money := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(money.setAmount(amount), money.setCurrency(currency)); err != nil {
		return Money{}, err
	}

	return money, nil
}

// ZeroMoney creates a zero amount in the given currency.
func ZeroMoney(currency string) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

// Validate checks that the Money value was constructed via a constructor.
// The zero value fails with ErrMoneyIsNotConstructed.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() string {
	return m.currency
}

// Add returns the sum of two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return Money{}, err
	}
	if m.currency != other.currency {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency", ErrCurrencyMismatch)
	}

	return NewMoney(m.amount.Add(other.amount), m.currency)
}

// IsEqual compares two Money values; they are equal when both the numeric
// amount and the currency match.
func (m Money) IsEqual(other Money) (bool, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return m.currency == other.currency && m.amount.Equal(other.amount), nil
}

// String returns "amount currency", e.g. "5000 TSH".
// This method implements the fmt.Stringer interface.
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.String(), m.currency)
}

// setAmount sets the amount with non-negativity validation.
func (m *Money) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", amount.String()))
	}

	m.amount = amount
	return nil
}

// setCurrency sets the currency code.
func (m *Money) setCurrency(currency string) error {
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}

	m.currency = currency
	return nil
}
