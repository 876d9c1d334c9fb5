package order

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/splitconfig"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrSplitIsNotConstructed = errs.NewValueIsRequiredError("split must be created via NewSplit constructor")

// Shares are the three settlement amounts of an order.
type Shares struct {
	Admin      kernel.Money
	Restaurant kernel.Money
	Delivery   kernel.Money
}

// Total sums the shares; all three must share one currency.
func (s Shares) Total() (kernel.Money, error) {
	sum, err := s.Admin.Add(s.Restaurant)
	if err != nil {
		return kernel.Money{}, err
	}
	return sum.Add(s.Delivery)
}

// Split is the revenue split stamped on an order at settlement. Rates are
// recorded for percent configs and left zero for fixed configs.
type Split struct { //nolint:recvcheck //using for validation
	method        splitconfig.Method
	rates         splitconfig.Rates
	shares        Shares
	configID      kernel.UUID
	configVersion int
	settledAt     *time.Time
	guard         guard.ConstructorGuard
}

// NewSplit builds an unsettled split. Order.Settle stamps settledAt.
func NewSplit(
	method splitconfig.Method,
	rates splitconfig.Rates,
	shares Shares,
	configID kernel.UUID,
	configVersion int,
) (Split, error) {
	var versionErr error
	if configVersion < 1 {
		versionErr = errs.NewValueIsOutOfRangeError("config version", configVersion, 1, "unbounded")
	}
	_, sharesErr := shares.Total()

	if err := errors.Join(configID.Validate(), versionErr, sharesErr); err != nil {
		return Split{}, err
	}

	return Split{
		method:        method,
		rates:         rates,
		shares:        shares,
		configID:      configID,
		configVersion: configVersion,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// RestoreSplit rebuilds a stored split together with its settlement time.
func RestoreSplit(
	method splitconfig.Method,
	rates splitconfig.Rates,
	shares Shares,
	configID kernel.UUID,
	configVersion int,
	settledAt *time.Time,
) (Split, error) {
	s, err := NewSplit(method, rates, shares, configID, configVersion)
	if err != nil {
		return Split{}, err
	}
	if settledAt != nil {
		at := *settledAt
		s.settledAt = &at
	}
	return s, nil
}

func (s Split) Validate() error {
	return s.guard.Validate(ErrSplitIsNotConstructed)
}

func (s Split) Method() splitconfig.Method {
	return s.method
}

func (s Split) Rates() splitconfig.Rates {
	return s.rates
}

func (s Split) Shares() Shares {
	return s.shares
}

func (s Split) Currency() string {
	return s.shares.Admin.Currency()
}

func (s Split) ConfigID() kernel.UUID {
	return s.configID
}

func (s Split) ConfigVersion() int {
	return s.configVersion
}

// SettledAt is nil until the split is stamped on an order.
func (s Split) SettledAt() *time.Time {
	if s.settledAt == nil {
		return nil
	}
	at := *s.settledAt
	return &at
}

func (s Split) IsSettled() bool {
	return s.settledAt != nil
}

func (s Split) String() string {
	return fmt.Sprintf("admin %s, restaurant %s, delivery %s",
		s.shares.Admin, s.shares.Restaurant, s.shares.Delivery)
}
