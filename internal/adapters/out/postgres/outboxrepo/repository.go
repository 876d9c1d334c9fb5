package outboxrepo

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/outbox"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClaimLease is how long a row handed out by GetPending stays invisible to
// other relays before it can be handed out again.
const ClaimLease = 5 * time.Minute

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Add(ctx context.Context, messages ...*outbox.Message) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		if err := m.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(m))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// GetPending claims up to limit unclaimed pending rows, oldest first. On
// PostgreSQL rows locked by a concurrent relay are skipped, so replicas
// never receive the same row while its claim holds. Update releases the
// claim.
func (r *GormOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	now := time.Now().UTC()
	var dtos []MessageDTO

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.
			Where("status = ?", string(outbox.StatusPending)).
			Where("(claimed_until IS NULL OR claimed_until < ?)", now).
			Order("created_at, id").
			Limit(limit)
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{
				Strength: clause.LockingStrengthUpdate,
				Options:  clause.LockingOptionsSkipLocked,
			})
		}
		if err := query.Find(&dtos).Error; err != nil {
			return err
		}
		if len(dtos) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, 0, len(dtos))
		for _, dto := range dtos {
			ids = append(ids, dto.ID)
		}
		return tx.Model(&MessageDTO{}).
			Where("id IN ?", ids).
			Update("claimed_until", now.Add(ClaimLease)).Error
	})
	if err != nil {
		return nil, err
	}

	messages := make([]*outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func (r *GormOutboxRepository) Update(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ?", message.ID().Bytes()).
		Updates(map[string]any{
			"status":        string(message.Status()),
			"attempts":      message.Attempts(),
			"last_error":    message.LastError(),
			"processed_at":  message.ProcessedAt(),
			"claimed_until": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", message.ID().String())
	}
	return nil
}
