package rabbitmq

import (
	"context"
	"fmt"

	"cafeteria/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange receives every order event; the routing key is the event
// name, so consumers bind to "order.*" or e.g. "order.ready".
const DefaultExchange = "cafeteria.orders"

var _ ports.EventPublisher = (*Publisher)(nil)

type Publisher struct {
	conn     Connection
	exchange string
}

func NewPublisher(conn Connection, exchange string) *Publisher {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &Publisher{conn: conn, exchange: exchange}
}

// Publish sends message as a persistent JSON delivery. MessageId carries the
// event id so consumers can drop the duplicates an outbox relay may produce.
func (p *Publisher) Publish(ctx context.Context, message ports.OutboxMessage) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err = ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", p.exchange, err)
	}

	err = ch.PublishWithContext(ctx, p.exchange, message.Name, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    message.ID.String(),
		Timestamp:    message.OccurredAt,
		Type:         message.Name,
		Body:         message.Payload,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", message.Name, err)
	}

	return nil
}
