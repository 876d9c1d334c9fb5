package kernel

import (
	"errors"
	"fmt"
	"regexp"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MinorUnitExponent is the number of decimal places in the minor unit.
// All supported currencies use cents.
const MinorUnitExponent = 2

var (
	ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or MoneyFromDecimal")
	ErrCurrencyMismatch      = errors.New("currency mismatch")

	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Money is a non-negative amount in minor currency units (cents).
// Arithmetic is exact integer arithmetic; shopspring/decimal is used only at
// the boundaries (parsing "18.50" and rendering back to a decimal).
type Money struct { //nolint:recvcheck //using for validation
	amount   int64
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney builds Money from an amount in cents and an ISO 4217 code.
func NewMoney(amount int64, currency string) (Money, error) {
	m := Money{guard: guard.NewConstructorGuard()}

	if err := errors.Join(m.setAmount(amount), m.setCurrency(currency)); err != nil {
		return Money{}, err
	}

	return m, nil
}

// MoneyFromDecimal converts a major-unit decimal such as 18.50 into cents.
// More than two fractional digits are rejected rather than rounded.
func MoneyFromDecimal(value decimal.Decimal, currency string) (Money, error) {
	if !value.Equal(value.Truncate(MinorUnitExponent)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s has more than %d decimal places", value.String(), MinorUnitExponent),
		)
	}
	return NewMoney(value.Shift(MinorUnitExponent).IntPart(), currency)
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currency string) (Money, error) {
	return NewMoney(0, currency)
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the value in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

// Decimal renders the amount in major units, e.g. 2050 -> 20.50.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.amount, -MinorUnitExponent)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Decimal().StringFixed(MinorUnitExponent), m.currency)
}

func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

// Add sums two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount+other.amount, m.currency)
}

// Multiply scales the amount by a non-negative integer factor.
func (m Money) Multiply(factor int) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if factor < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("factor", factor, 0, "unbounded")
	}
	return NewMoney(m.amount*int64(factor), m.currency)
}

func (m Money) sameCurrency(other Money) error {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return err
	}
	if m.currency != other.currency {
		return errs.NewValueIsInvalidErrorWithCause(
			"currency",
			fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency),
		)
	}
	return nil
}

func (m *Money) setAmount(amount int64) error {
	if amount < 0 {
		return errs.NewValueIsOutOfRangeError("amount", amount, 0, "unbounded")
	}
	m.amount = amount
	return nil
}

func (m *Money) setCurrency(currency string) error {
	if !currencyPattern.MatchString(currency) {
		return errs.NewValueIsInvalidErrorWithCause(
			"currency", fmt.Errorf("%q is not an ISO 4217 code", currency))
	}
	m.currency = currency
	return nil
}
