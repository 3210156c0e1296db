package ports

import (
	"context"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event waiting to be relayed to the message broker.
type OutboxMessage struct {
	ID          kernel.UUID
	Name        string
	AggregateID kernel.UUID
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxStore reads and acknowledges stored events.
type OutboxStore interface {
	// FetchPending returns up to limit unsent messages, oldest first.
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkSent flags a message as relayed.
	MarkSent(ctx context.Context, id kernel.UUID, at time.Time) error
}

// EventPublisher delivers a message to subscribers. Name is the routing key.
type EventPublisher interface {
	Publish(ctx context.Context, message OutboxMessage) error
}
