package outboxrepo

import (
	"context"
	"fmt"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.OutboxStore = (*GormOutboxStore)(nil)

// Write inserts events on tx. An event already stored is skipped, so writing
// the same aggregate twice in one transaction is harmless.
func Write(ctx context.Context, tx *gorm.DB, events []kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	rows := make([]MessageDTO, 0, len(events))
	for _, event := range events {
		row, err := fromEvent(event)
		if err != nil {
			return fmt.Errorf("encode %s: %w", event.EventName(), err)
		}
		rows = append(rows, row)
	}

	return tx.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

// GormOutboxStore reads pending rows for the relay.
type GormOutboxStore struct {
	db *gorm.DB
}

func NewGormOutboxStore(db *gorm.DB) *GormOutboxStore {
	return &GormOutboxStore{db: db}
}

// FetchPending returns unsent messages oldest first.
func (s *GormOutboxStore) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var rows []MessageDTO
	err := s.db.WithContext(ctx).
		Where("sent_at IS NULL").
		Order("occurred_at, id").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		message, err := toMessage(row)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}

func (s *GormOutboxStore) MarkSent(ctx context.Context, id kernel.UUID, at time.Time) error {
	result := s.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id = ? AND sent_at IS NULL", id.Bytes()).
		Update("sent_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", id.String())
	}
	return nil
}
