// Package splitconfigrepo persists versioned split configurations.
package splitconfigrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/splitconfig"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SplitConfigDTO is one version of a scope's split rules. RestaurantKey is
// the restaurant id as text, or empty for the global scope, so the unique
// version index also covers the global rows.
type SplitConfigDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Scope         string     `gorm:"size:16;not null;index:idx_split_configs_active,priority:1;uniqueIndex:idx_split_configs_version,priority:1"`
	RestaurantID  *uuid.UUID `gorm:"type:uuid;index:idx_split_configs_active,priority:2"`
	RestaurantKey string     `gorm:"size:36;not null;default:'';uniqueIndex:idx_split_configs_version,priority:2"`
	Version       int        `gorm:"not null;uniqueIndex:idx_split_configs_version,priority:3"`
	Active        bool       `gorm:"not null;index:idx_split_configs_active,priority:3"`

	Method         string          `gorm:"size:8;not null"`
	AdminRate      decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	RestaurantRate decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	DeliveryRate   decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`

	DeliveryFee             int64           `gorm:"not null;default:0"`
	RemainderPolicy         string          `gorm:"size:16;not null;default:''"`
	RemainderAdminRate      decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	RemainderRestaurantRate decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`

	Currency  string    `gorm:"size:3;not null"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
}

func (SplitConfigDTO) TableName() string {
	return "split_configs"
}

func restaurantKey(restaurantID *kernel.UUID) string {
	if restaurantID == nil {
		return ""
	}
	return restaurantID.String()
}

func fromDomain(cfg *splitconfig.SplitConfig) SplitConfigDTO {
	terms := cfg.Terms()
	rates := terms.Rates()
	remainder := terms.RemainderRates()

	dto := SplitConfigDTO{
		ID:                      cfg.ID().Bytes(),
		Scope:                   string(cfg.Scope()),
		RestaurantKey:           restaurantKey(cfg.RestaurantID()),
		Version:                 cfg.Version(),
		Active:                  cfg.IsActive(),
		Method:                  string(terms.Method()),
		AdminRate:               rates.Admin,
		RestaurantRate:          rates.Restaurant,
		DeliveryRate:            rates.Delivery,
		DeliveryFee:             terms.DeliveryFee().Amount(),
		RemainderPolicy:         string(terms.RemainderPolicy()),
		RemainderAdminRate:      remainder.Admin,
		RemainderRestaurantRate: remainder.Restaurant,
		Currency:                terms.Currency(),
		CreatedBy:               cfg.CreatedBy().Bytes(),
		CreatedAt:               cfg.CreatedAt(),
	}
	if rid := cfg.RestaurantID(); rid != nil {
		id := rid.Bytes()
		dto.RestaurantID = &id
	}
	return dto
}

// toDomain restores the row as stored. Rules are not re-validated here;
// the settlement engine rejects configs that are no longer valid.
func toDomain(dto SplitConfigDTO) (*splitconfig.SplitConfig, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromGoogle(dto.CreatedBy)
	if err != nil {
		return nil, err
	}

	var restaurantID *kernel.UUID
	if dto.RestaurantID != nil {
		rid, ridErr := kernel.UUIDFromGoogle(*dto.RestaurantID)
		if ridErr != nil {
			return nil, ridErr
		}
		restaurantID = &rid
	}

	var fee kernel.Money
	if splitconfig.Method(dto.Method) == splitconfig.MethodFixed {
		if fee, err = kernel.NewMoney(dto.DeliveryFee, dto.Currency); err != nil {
			return nil, err
		}
	}

	terms := splitconfig.RestoreTerms(
		splitconfig.Method(dto.Method),
		splitconfig.Rates{Admin: dto.AdminRate, Restaurant: dto.RestaurantRate, Delivery: dto.DeliveryRate},
		fee,
		splitconfig.RemainderPolicy(dto.RemainderPolicy),
		splitconfig.RemainderRates{Admin: dto.RemainderAdminRate, Restaurant: dto.RemainderRestaurantRate},
		dto.Currency,
	)

	return splitconfig.Restore(id, restaurantID, dto.Version, terms, dto.Active, createdBy, dto.CreatedAt), nil
}
