package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update writes every mutable column conditioned on the stored status and
// version the aggregate was read at. Items and totals are immutable and
// never rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rows, err := r.conditionalUpdate(ctx, aggregate, "status = ?", expected.String())
	if err != nil {
		return err
	}
	if rows == 0 {
		return r.lostRace(ctx, aggregate, expected)
	}

	aggregate.IncrementVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Assign is Update with the extra condition that no assignment has been
// stored yet.
func (r *GormOrderRepository) Assign(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !aggregate.IsAssigned() {
		return errs.NewValueIsRequiredError("assignment")
	}

	rows, err := r.conditionalUpdate(ctx, aggregate,
		"status = ? AND assignment_mode IS NULL", expected.String())
	if err != nil {
		return err
	}
	if rows == 0 {
		if err = r.lostRace(ctx, aggregate, expected); errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}
		return order.ErrAlreadyAssigned
	}

	aggregate.IncrementVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) conditionalUpdate(
	ctx context.Context,
	aggregate *order.Order,
	condition string,
	args ...any,
) (int64, error) {
	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	// Select("*") makes GORM write zero values too, so cleared columns
	// stay in sync with the aggregate.
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Where(condition, args...).
		Select("*").
		Omit(clause.Associations, "id", "customer_id", "restaurant_id", "currency",
			"items_total", "shipping_fee", "total", "transport_mode", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// lostRace explains why a conditional write matched no row. A changed
// status is an illegal transition; an unchanged status means another write
// landed on the same state first.
func (r *GormOrderRepository) lostRace(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	var stored struct {
		Status  string
		Version int
	}
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Select("status", "version").
		Where("id = ?", aggregate.ID().Bytes()).
		Take(&stored).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return err
	}

	current, err := order.ParseStatus(stored.Status)
	if err != nil {
		return err
	}
	if current != expected {
		return &order.TransitionError{From: current, To: aggregate.Status()}
	}
	return errs.NewInvalidStateError(
		"order "+aggregate.ID().String(),
		fmt.Sprintf("%s at version %d, read at %d", current, stored.Version, aggregate.Version()),
	)
}
