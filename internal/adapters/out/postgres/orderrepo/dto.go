// Package orderrepo persists the order aggregate with GORM: the order row,
// its lines and the status audit log.
package orderrepo

import (
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Token         string          `gorm:"not null;uniqueIndex:orders_token_key"`
	Email         string          `gorm:"not null;index:orders_email_created_at_idx,priority:1"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentMethod string          `gorm:"not null;default:''"`
	Status        int             `gorm:"type:smallint;not null"`
	CreatedAt     time.Time       `gorm:"not null;index:orders_email_created_at_idx,priority:2,sort:desc"`
	Items         []OrderItemDTO  `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order line; Position keeps the submitted order.
type OrderItemDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"primaryKey"`
	Name      string          `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity  int             `gorm:"not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// StatusLogDTO is one row of the order status audit log.
type StatusLogDTO struct {
	EventID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FromStatus int       `gorm:"type:smallint;not null"`
	Status     int       `gorm:"type:smallint;not null"`
	ChangedBy  string    `gorm:"not null"`
	ChangedAt  time.Time `gorm:"not null"`
}

func (StatusLogDTO) TableName() string {
	return "order_status_log"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	id := aggregate.ID().Bytes()

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for idx, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   id,
			Position:  idx,
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().Decimal(),
			Quantity:  item.Quantity(),
		})
	}

	return OrderDTO{
		ID:            id,
		Token:         aggregate.Token().String(),
		Email:         aggregate.Customer().String(),
		Total:         aggregate.Total().Decimal(),
		PaymentMethod: aggregate.PaymentMethod(),
		Status:        int(aggregate.Status()),
		CreatedAt:     aggregate.CreatedAt(),
		Items:         items,
	}
}

// toDomain rebuilds the aggregate with RestoreOrder. Items must be sorted by Position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	token, err := order.RestoreToken(dto.Token)
	if err != nil {
		return nil, err
	}

	email, err := kernel.NewEmail(dto.Email)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		price, priceErr := kernel.NewMoney(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewItem(itemDTO.Name, price, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, token, email, items, total, dto.PaymentMethod, order.Status(dto.Status), dto.CreatedAt)
}

// statusLogFromEvents picks the StatusChanged events of an aggregate.
func statusLogFromEvents(events []kernel.DomainEvent) []StatusLogDTO {
	rows := make([]StatusLogDTO, 0, len(events))
	for _, event := range events {
		changed, ok := event.(order.StatusChanged)
		if !ok {
			continue
		}
		rows = append(rows, StatusLogDTO{
			EventID:    changed.EventID().Bytes(),
			OrderID:    changed.AggregateID().Bytes(),
			FromStatus: int(changed.From()),
			Status:     int(changed.To()),
			ChangedBy:  changed.ChangedBy(),
			ChangedAt:  changed.OccurredAt(),
		})
	}
	return rows
}
