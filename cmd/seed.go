package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/splitconfig"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// seedActorID is recorded as the creator of seeded split configs.
var seedActorID = uuid.MustParse("00000000-0000-0000-0000-00000000a0a0")

// SplitConfigSeed is the YAML document read at startup:
//
//	configs:
//	  - method: percent
//	    currency: USD
//	    rates: {admin: "10", restaurant: "85", delivery: "5"}
//	  - restaurantId: 6f1c2d4e-8a36-4b5e-9f0a-2d7c1e3b4a59
//	    method: fixed
//	    currency: USD
//	    deliveryFee: "3.00"
//	    remainderPolicy: restaurant
type SplitConfigSeed struct {
	Configs []SeedConfig `yaml:"configs"`
}

type SeedConfig struct {
	RestaurantID    string            `yaml:"restaurantId"`
	Method          string            `yaml:"method"`
	Currency        string            `yaml:"currency"`
	Rates           map[string]string `yaml:"rates"`
	DeliveryFee     string            `yaml:"deliveryFee"`
	RemainderPolicy string            `yaml:"remainderPolicy"`
	RemainderRates  map[string]string `yaml:"remainderRates"`
}

type splitConfigActivator interface {
	Handle(ctx context.Context, cmd commands.ActivateSplitConfigCommand) error
}

// ParseSplitConfigSeed decodes a seed document.
func ParseSplitConfigSeed(data []byte) (SplitConfigSeed, error) {
	var seed SplitConfigSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return SplitConfigSeed{}, fmt.Errorf("decode split config seed: %w", err)
	}
	return seed, nil
}

// Apply activates every seeded config whose scope has never had one.
// Scopes that already carry a version are left alone so a restart never
// overrides what an admin activated.
func (s SplitConfigSeed) Apply(
	ctx context.Context,
	uowFactory commands.SplitConfigUoWFactory,
	activator splitConfigActivator,
	logger *slog.Logger,
) error {
	admin, err := seedActor()
	if err != nil {
		return err
	}

	for i, entry := range s.Configs {
		restaurantID, terms, err := entry.parse()
		if err != nil {
			return fmt.Errorf("split config seed entry %d: %w", i, err)
		}

		latest, err := latestVersion(ctx, uowFactory, restaurantID)
		if err != nil {
			return err
		}
		if latest > 0 {
			logger.DebugContext(ctx, "split config scope already configured", "scope", scopeName(restaurantID))
			continue
		}

		cmd, err := commands.NewActivateSplitConfigCommand(kernel.NewUUID(), restaurantID, terms, admin)
		if err != nil {
			return fmt.Errorf("split config seed entry %d: %w", i, err)
		}
		if err = activator.Handle(ctx, cmd); err != nil {
			return fmt.Errorf("activate seeded split config for %s: %w", scopeName(restaurantID), err)
		}
		logger.InfoContext(ctx, "seeded split config", "scope", scopeName(restaurantID), "method", terms.Method())
	}
	return nil
}

func (e SeedConfig) parse() (*kernel.UUID, splitconfig.Terms, error) {
	var restaurantID *kernel.UUID
	if strings.TrimSpace(e.RestaurantID) != "" {
		parsed, err := uuid.Parse(strings.TrimSpace(e.RestaurantID))
		if err != nil {
			return nil, splitconfig.Terms{}, fmt.Errorf("restaurantId: %w", err)
		}
		id, err := kernel.UUIDFromGoogle(parsed)
		if err != nil {
			return nil, splitconfig.Terms{}, err
		}
		restaurantID = &id
	}

	currency := strings.ToUpper(strings.TrimSpace(e.Currency))

	switch strings.ToLower(e.Method) {
	case string(splitconfig.MethodPercent):
		rates, err := decimals(e.Rates, "admin", "restaurant", "delivery")
		if err != nil {
			return nil, splitconfig.Terms{}, err
		}
		terms, err := splitconfig.NewPercentTerms(splitconfig.Rates{
			Admin:      rates[0],
			Restaurant: rates[1],
			Delivery:   rates[2],
		}, currency)
		return restaurantID, terms, err

	case string(splitconfig.MethodFixed):
		amount, err := decimal.NewFromString(strings.TrimSpace(e.DeliveryFee))
		if err != nil {
			return nil, splitconfig.Terms{}, fmt.Errorf("deliveryFee: %w", err)
		}
		fee, err := kernel.MoneyFromDecimal(amount, currency)
		if err != nil {
			return nil, splitconfig.Terms{}, err
		}

		policy := splitconfig.RemainderPolicy(strings.ToLower(e.RemainderPolicy))
		var rr splitconfig.RemainderRates
		if policy == splitconfig.RemainderByPercent {
			rates, err := decimals(e.RemainderRates, "admin", "restaurant")
			if err != nil {
				return nil, splitconfig.Terms{}, err
			}
			rr = splitconfig.RemainderRates{Admin: rates[0], Restaurant: rates[1]}
		}
		terms, err := splitconfig.NewFixedTerms(fee, policy, rr)
		return restaurantID, terms, err

	default:
		return nil, splitconfig.Terms{}, fmt.Errorf("method %q is not percent or fixed", e.Method)
	}
}

func decimals(values map[string]string, keys ...string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(keys))
	var problems []error
	for i, key := range keys {
		d, err := decimal.NewFromString(strings.TrimSpace(values[key]))
		if err != nil {
			problems = append(problems, fmt.Errorf("%s rate: %w", key, err))
			continue
		}
		out[i] = d
	}
	return out, errors.Join(problems...)
}

func latestVersion(ctx context.Context, f commands.SplitConfigUoWFactory, restaurantID *kernel.UUID) (int, error) {
	uow := f.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()
	return uow.SplitConfigRepository().LatestVersion(ctx, restaurantID)
}

func seedActor() (kernel.Actor, error) {
	id, err := kernel.UUIDFromGoogle(seedActorID)
	if err != nil {
		return kernel.Actor{}, err
	}
	return kernel.NewActor(id, kernel.RoleAdmin, nil)
}

func scopeName(restaurantID *kernel.UUID) string {
	if restaurantID == nil {
		return "global"
	}
	return "restaurant " + restaurantID.String()
}
