// Package outboxrepo stores order events next to the data that produced them
// and hands them to the relay.
package outboxrepo

import (
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/ports"

	"github.com/google/uuid"
)

// MessageDTO is an outbox_messages row. SentAt stays NULL until relayed.
type MessageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	AggregateID uuid.UUID `gorm:"type:uuid;not null"`
	Payload     []byte    `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time `gorm:"not null"`
	SentAt      *time.Time
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromEvent(event kernel.DomainEvent) (MessageDTO, error) {
	payload, err := event.Payload()
	if err != nil {
		return MessageDTO{}, err
	}
	return MessageDTO{
		ID:          event.EventID().Bytes(),
		Name:        event.EventName(),
		AggregateID: event.AggregateID().Bytes(),
		Payload:     payload,
		OccurredAt:  event.OccurredAt(),
	}, nil
}

func toMessage(dto MessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	return ports.OutboxMessage{
		ID:          id,
		Name:        dto.Name,
		AggregateID: aggregateID,
		Payload:     dto.Payload,
		OccurredAt:  dto.OccurredAt,
	}, nil
}
