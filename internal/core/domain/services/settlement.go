package services

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/splitconfig"

	"github.com/shopspring/decimal"
)

// ErrNoActiveConfig is returned when neither the restaurant nor the global
// scope has an active split config.
var ErrNoActiveConfig = errors.New("no active split config")

var hundred = decimal.NewFromInt(100)

// SettlementEngine turns an order total and a split config into the three
// settlement shares. It is pure: the same inputs always give the same split.
//
// Rounding rule: every non-admin share is floored to whole cents and the
// admin share takes what is left, so the shares always sum to the total.
//
// Example:
//
//	engine := NewSettlementEngine()
//	split, err := engine.ComputeSplit(total, cfg) // 2050 at 10/85/5 -> 206/1742/102
type SettlementEngine struct{}

func NewSettlementEngine() SettlementEngine {
	return SettlementEngine{}
}

// ComputeSplit returns an unsettled split recording the config id and
// version it was computed from.
func (e SettlementEngine) ComputeSplit(total kernel.Money, cfg *splitconfig.SplitConfig) (order.Split, error) {
	if cfg == nil {
		return order.Split{}, ErrNoActiveConfig
	}
	if err := errors.Join(total.Validate(), cfg.Validate()); err != nil {
		return order.Split{}, err
	}

	terms := cfg.Terms()
	if err := terms.Validate(); err != nil {
		return order.Split{}, err
	}
	if terms.Currency() != total.Currency() {
		return order.Split{}, fmt.Errorf("%w: config currency %s, order currency %s",
			splitconfig.ErrInvalidConfig, terms.Currency(), total.Currency())
	}

	var (
		shares order.Shares
		rates  splitconfig.Rates
		err    error
	)
	switch terms.Method() {
	case splitconfig.MethodPercent:
		rates = terms.Rates()
		shares, err = e.percentShares(total, rates)
	case splitconfig.MethodFixed:
		shares, err = e.fixedShares(total, terms)
	default:
		err = fmt.Errorf("%w: unknown method %q", splitconfig.ErrInvalidConfig, string(terms.Method()))
	}
	if err != nil {
		return order.Split{}, err
	}

	return order.NewSplit(terms.Method(), rates, shares, cfg.ID(), cfg.Version())
}

func (e SettlementEngine) percentShares(total kernel.Money, rates splitconfig.Rates) (order.Shares, error) {
	cents := total.Amount()
	restaurant := floorShare(cents, rates.Restaurant)
	delivery := floorShare(cents, rates.Delivery)
	admin := cents - restaurant - delivery

	return buildShares(total.Currency(), admin, restaurant, delivery)
}

func (e SettlementEngine) fixedShares(total kernel.Money, terms splitconfig.Terms) (order.Shares, error) {
	cents := total.Amount()
	delivery := min(terms.DeliveryFee().Amount(), cents)
	remainder := cents - delivery

	var admin, restaurant int64
	switch terms.RemainderPolicy() {
	case splitconfig.RemainderToRestaurant:
		restaurant = remainder
	case splitconfig.RemainderByPercent:
		restaurant = floorShare(remainder, terms.RemainderRates().Restaurant)
		admin = remainder - restaurant
	default:
		return order.Shares{}, fmt.Errorf("%w: fixed config needs a remainder policy", splitconfig.ErrInvalidConfig)
	}

	return buildShares(total.Currency(), admin, restaurant, delivery)
}

// floorShare is floor(cents × rate / 100).
func floorShare(cents int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(cents).Mul(rate).Div(hundred).Floor().IntPart()
}

func buildShares(currency string, admin, restaurant, delivery int64) (order.Shares, error) {
	adminMoney, adminErr := kernel.NewMoney(admin, currency)
	restaurantMoney, restaurantErr := kernel.NewMoney(restaurant, currency)
	deliveryMoney, deliveryErr := kernel.NewMoney(delivery, currency)
	if err := errors.Join(adminErr, restaurantErr, deliveryErr); err != nil {
		return order.Shares{}, err
	}
	return order.Shares{Admin: adminMoney, Restaurant: restaurantMoney, Delivery: deliveryMoney}, nil
}
