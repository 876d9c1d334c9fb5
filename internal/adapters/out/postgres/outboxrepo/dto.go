// Package outboxrepo stores notification messages written alongside order
// changes until the relay has delivered them.
package outboxrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

type MessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AggregateID uuid.UUID `gorm:"type:uuid;not null;index"`
	EventType   string    `gorm:"size:64;not null"`
	Payload     string    `gorm:"type:text;not null"`
	Traceparent string    `gorm:"size:64;not null;default:''"`
	Status      string    `gorm:"size:16;not null;index:idx_outbox_pending,priority:1"`
	Attempts    int       `gorm:"not null;default:0"`
	LastError   string    `gorm:"type:text;not null;default:''"`
	CreatedAt   time.Time `gorm:"not null;index:idx_outbox_pending,priority:2;autoCreateTime:false"`
	ProcessedAt *time.Time
	// ClaimedUntil is set while a relay holds the row. An expired claim
	// makes the row pending again.
	ClaimedUntil *time.Time
}

func (MessageDTO) TableName() string {
	return "notification_outbox"
}

func fromDomain(m *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:          m.ID().Bytes(),
		AggregateID: m.AggregateID().Bytes(),
		EventType:   m.EventType(),
		Payload:     string(m.Payload()),
		Traceparent: m.Traceparent(),
		Status:      string(m.Status()),
		Attempts:    m.Attempts(),
		LastError:   m.LastError(),
		CreatedAt:   m.CreatedAt(),
		ProcessedAt: m.ProcessedAt(),
	}
}

func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	aggregateID, err := kernel.UUIDFromGoogle(dto.AggregateID)
	if err != nil {
		return nil, err
	}
	m := outbox.RestoreMessage(
		id,
		aggregateID,
		dto.EventType,
		[]byte(dto.Payload),
		dto.Traceparent,
		outbox.Status(dto.Status),
		dto.Attempts,
		dto.LastError,
		dto.CreatedAt,
		dto.ProcessedAt,
	)
	return m, nil
}
