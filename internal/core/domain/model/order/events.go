package order

import (
	"encoding/json"
	"strings"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
)

// StatusChanged is recorded on placement (From is Unknown) and on every applied transition.
type StatusChanged struct {
	eventID    kernel.UUID
	orderID    kernel.UUID
	token      Token
	customer   kernel.Email
	from       Status
	to         Status
	changedBy  string
	occurredAt time.Time
}

var _ kernel.DomainEvent = StatusChanged{}

func newStatusChanged(o *Order, from, to Status, changedBy string, at time.Time) StatusChanged {
	return StatusChanged{
		eventID:    kernel.NewUUID(),
		orderID:    o.id,
		token:      o.token,
		customer:   o.customer,
		from:       from,
		to:         to,
		changedBy:  changedBy,
		occurredAt: at,
	}
}

func (e StatusChanged) EventID() kernel.UUID     { return e.eventID }
func (e StatusChanged) AggregateID() kernel.UUID { return e.orderID }
func (e StatusChanged) OccurredAt() time.Time    { return e.occurredAt }
func (e StatusChanged) From() Status             { return e.from }
func (e StatusChanged) To() Status               { return e.to }
func (e StatusChanged) ChangedBy() string        { return e.changedBy }

// EventName doubles as the message routing key, e.g. "order.ready".
func (e StatusChanged) EventName() string {
	return "order." + strings.ToLower(e.to.String())
}

type statusChangedPayload struct {
	EventID    string    `json:"eventId"`
	OrderID    string    `json:"orderId"`
	Token      string    `json:"token"`
	Email      string    `json:"email"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to"`
	ChangedBy  string    `json:"changedBy"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Payload is the JSON body published to subscribers.
func (e StatusChanged) Payload() ([]byte, error) {
	p := statusChangedPayload{
		EventID:    e.eventID.String(),
		OrderID:    e.orderID.String(),
		Token:      e.token.String(),
		Email:      e.customer.String(),
		To:         e.to.String(),
		ChangedBy:  e.changedBy,
		OccurredAt: e.occurredAt.UTC(),
	}
	if e.from != Unknown {
		p.From = e.from.String()
	}
	return json.Marshal(p)
}
