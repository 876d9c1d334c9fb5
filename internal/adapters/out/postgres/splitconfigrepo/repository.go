package splitconfigrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/splitconfig"

	"gorm.io/gorm"
)

type GormSplitConfigRepository struct {
	db *gorm.DB
}

func NewGormSplitConfigRepository(db *gorm.DB) *GormSplitConfigRepository {
	return &GormSplitConfigRepository{db: db}
}

func (r *GormSplitConfigRepository) GetActive(
	ctx context.Context,
	restaurantID *kernel.UUID,
) (*splitconfig.SplitConfig, error) {
	if restaurantID != nil {
		cfg, err := r.activeIn(ctx, splitconfig.ScopeRestaurant, restaurantKey(restaurantID))
		if err != nil || cfg != nil {
			return cfg, err
		}
	}
	return r.activeIn(ctx, splitconfig.ScopeGlobal, "")
}

func (r *GormSplitConfigRepository) activeIn(
	ctx context.Context,
	scope splitconfig.Scope,
	key string,
) (*splitconfig.SplitConfig, error) {
	var dto SplitConfigDTO
	err := r.db.WithContext(ctx).
		Where("scope = ? AND restaurant_key = ? AND active = ?", string(scope), key, true).
		Order("version DESC").
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormSplitConfigRepository) LatestVersion(ctx context.Context, restaurantID *kernel.UUID) (int, error) {
	var latest int
	row := r.db.WithContext(ctx).
		Model(&SplitConfigDTO{}).
		Where("scope = ? AND restaurant_key = ?", string(splitconfig.ScopeOf(restaurantID)), restaurantKey(restaurantID)).
		Select("COALESCE(MAX(version), 0)").
		Row()
	if err := row.Scan(&latest); err != nil {
		return 0, err
	}
	return latest, nil
}

// Activate retires the scope's active row and inserts cfg. The unique
// (scope, restaurant_key, version) index rejects a concurrent activation
// that computed the same version.
func (r *GormSplitConfigRepository) Activate(ctx context.Context, cfg *splitconfig.SplitConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	dto := fromDomain(cfg)
	db := r.db.WithContext(ctx)

	err := db.Model(&SplitConfigDTO{}).
		Where("scope = ? AND restaurant_key = ? AND active = ?", dto.Scope, dto.RestaurantKey, true).
		Update("active", false).Error
	if err != nil {
		return err
	}

	dto.Active = true
	return db.Create(&dto).Error
}
