package commands

import (
	"context"
	"fmt"
	"time"

	"cafeteria/internal/core/ports"
)

// RelayOutboxCommandHandler publishes pending outbox messages oldest first and
// marks each one sent after the broker accepted it. Delivery is at least once:
// a crash between Publish and MarkSent republishes the message on the next run.
type RelayOutboxCommandHandler struct {
	store     ports.OutboxStore
	publisher ports.EventPublisher
}

func NewRelayOutboxCommandHandler(store ports.OutboxStore, publisher ports.EventPublisher) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		store:     store,
		publisher: publisher,
	}
}

// Handle returns how many messages were relayed. It stops at the first publish
// failure so ordering per order is kept.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	pending, err := h.store.FetchPending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	relayed := 0
	for _, message := range pending {
		if err = h.publisher.Publish(ctx, message); err != nil {
			return relayed, fmt.Errorf("publish %s %s: %w", message.Name, message.ID, err)
		}
		if err = h.store.MarkSent(ctx, message.ID, time.Now()); err != nil {
			return relayed, err
		}
		relayed++
	}

	return relayed, nil
}
