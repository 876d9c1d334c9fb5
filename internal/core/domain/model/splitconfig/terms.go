package splitconfig

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// ErrInvalidConfig marks split rules that cannot be used for settlement.
var ErrInvalidConfig = errors.New("invalid split config")

var hundred = decimal.NewFromInt(100)

type Method string

const (
	MethodPercent Method = "percent"
	MethodFixed   Method = "fixed"
)

// RemainderPolicy decides who receives what is left of a fixed-mode total
// after the delivery fee.
type RemainderPolicy string

const (
	// RemainderUnset is never valid for a fixed config.
	RemainderUnset RemainderPolicy = ""

	// RemainderToRestaurant gives the whole remainder to the restaurant.
	RemainderToRestaurant RemainderPolicy = "restaurant"

	// RemainderByPercent splits the remainder between admin and restaurant.
	RemainderByPercent RemainderPolicy = "percent"
)

// Rates are percentages of the order total.
type Rates struct {
	Admin      decimal.Decimal
	Restaurant decimal.Decimal
	Delivery   decimal.Decimal
}

func (r Rates) Sum() decimal.Decimal {
	return r.Admin.Add(r.Restaurant).Add(r.Delivery)
}

// RemainderRates split a fixed-mode remainder between admin and restaurant.
type RemainderRates struct {
	Admin      decimal.Decimal
	Restaurant decimal.Decimal
}

func (r RemainderRates) Sum() decimal.Decimal {
	return r.Admin.Add(r.Restaurant)
}

// Terms are the settlement rules of a config, independent of its scope and
// version.
type Terms struct {
	method          Method
	rates           Rates
	deliveryFee     kernel.Money
	remainderPolicy RemainderPolicy
	remainderRates  RemainderRates
	currency        string
}

// NewPercentTerms builds validated percent-mode terms.
func NewPercentTerms(rates Rates, currency string) (Terms, error) {
	t := Terms{method: MethodPercent, rates: rates, currency: currency}
	if err := t.Validate(); err != nil {
		return Terms{}, err
	}
	return t, nil
}

// NewFixedTerms builds validated fixed-mode terms. remainderRates is only
// read for RemainderByPercent.
func NewFixedTerms(deliveryFee kernel.Money, policy RemainderPolicy, remainderRates RemainderRates) (Terms, error) {
	t := Terms{
		method:          MethodFixed,
		deliveryFee:     deliveryFee,
		remainderPolicy: policy,
		remainderRates:  remainderRates,
		currency:        deliveryFee.Currency(),
	}
	if err := t.Validate(); err != nil {
		return Terms{}, err
	}
	return t, nil
}

// RestoreTerms rebuilds terms from storage without validating them.
func RestoreTerms(
	method Method,
	rates Rates,
	deliveryFee kernel.Money,
	policy RemainderPolicy,
	remainderRates RemainderRates,
	currency string,
) Terms {
	return Terms{
		method:          method,
		rates:           rates,
		deliveryFee:     deliveryFee,
		remainderPolicy: policy,
		remainderRates:  remainderRates,
		currency:        currency,
	}
}

// Validate reports every rule violation wrapped in ErrInvalidConfig.
func (t Terms) Validate() error {
	if _, err := kernel.ZeroMoney(t.currency); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	switch t.method {
	case MethodPercent:
		return t.validatePercent()
	case MethodFixed:
		return t.validateFixed()
	default:
		return fmt.Errorf("%w: unknown method %q", ErrInvalidConfig, string(t.method))
	}
}

func (t Terms) Method() Method {
	return t.method
}

func (t Terms) Rates() Rates {
	return t.rates
}

func (t Terms) DeliveryFee() kernel.Money {
	return t.deliveryFee
}

func (t Terms) RemainderPolicy() RemainderPolicy {
	return t.remainderPolicy
}

func (t Terms) RemainderRates() RemainderRates {
	return t.remainderRates
}

func (t Terms) Currency() string {
	return t.currency
}

func (t Terms) validatePercent() error {
	var problems []error
	for name, rate := range map[string]decimal.Decimal{
		"admin":      t.rates.Admin,
		"restaurant": t.rates.Restaurant,
		"delivery":   t.rates.Delivery,
	} {
		if rate.IsNegative() || rate.GreaterThan(hundred) {
			problems = append(problems, fmt.Errorf("%w: %s rate %s is outside [0, 100]", ErrInvalidConfig, name, rate))
		}
	}
	if sum := t.rates.Sum(); !sum.Equal(hundred) {
		problems = append(problems, fmt.Errorf("%w: rates sum to %s, want 100", ErrInvalidConfig, sum))
	}
	return errors.Join(problems...)
}

func (t Terms) validateFixed() error {
	if err := t.deliveryFee.Validate(); err != nil {
		return fmt.Errorf("%w: delivery fee: %w", ErrInvalidConfig, err)
	}
	if t.deliveryFee.Currency() != t.currency {
		return fmt.Errorf("%w: delivery fee currency %s differs from %s", ErrInvalidConfig, t.deliveryFee.Currency(), t.currency)
	}

	switch t.remainderPolicy {
	case RemainderToRestaurant:
		return nil
	case RemainderByPercent:
		r := t.remainderRates
		if r.Admin.IsNegative() || r.Restaurant.IsNegative() {
			return fmt.Errorf("%w: remainder rates must not be negative", ErrInvalidConfig)
		}
		if sum := r.Sum(); !sum.Equal(hundred) {
			return fmt.Errorf("%w: remainder rates sum to %s, want 100", ErrInvalidConfig, sum)
		}
		return nil
	case RemainderUnset:
		return fmt.Errorf("%w: fixed config needs a remainder policy", ErrInvalidConfig)
	default:
		return fmt.Errorf("%w: unknown remainder policy %q", ErrInvalidConfig, string(t.remainderPolicy))
	}
}
