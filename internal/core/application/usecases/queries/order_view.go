// Package queries contains read operations. Handlers read straight from the
// database with raw SQL and return read models, never aggregates.
package queries

import (
	"context"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView is an order as clients see it.
type OrderView struct {
	ID            kernel.UUID
	Token         string
	CustomerEmail string
	Items         []OrderLineView
	Total         kernel.Money
	PaymentMethod string
	Status        order.Status
	CreatedAt     time.Time
}

// OrderLineView is one priced line of an OrderView.
type OrderLineView struct {
	Name      string
	UnitPrice kernel.Money
	Quantity  int
}

const selectOrdersWithItems = `
	SELECT
		o.id,
		o.token,
		o.email,
		o.total,
		o.payment_method,
		o.status,
		o.created_at,
		i.name,
		i.unit_price,
		i.quantity
	FROM orders o
	LEFT JOIN order_items i ON i.order_id = o.id
`

// loadOrders runs selectOrdersWithItems with the given tail (WHERE/ORDER BY)
// and folds the joined rows back into one view per order, keeping row order.
func loadOrders(ctx context.Context, db *gorm.DB, tail string, args ...any) ([]OrderView, error) {
	rows, err := db.WithContext(ctx).Raw(selectOrdersWithItems+tail, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]OrderView, 0)
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var (
			id            uuid.UUID
			token         string
			email         string
			total         decimal.Decimal
			paymentMethod string
			status        int
			createdAt     time.Time
			itemName      *string
			unitPrice     decimal.NullDecimal
			quantity      *int
		)

		if err = rows.Scan(
			&id, &token, &email, &total, &paymentMethod, &status, &createdAt,
			&itemName, &unitPrice, &quantity,
		); err != nil {
			return nil, err
		}

		pos, seen := index[id]
		if !seen {
			view, viewErr := newOrderView(id, token, email, total, paymentMethod, status, createdAt)
			if viewErr != nil {
				return nil, viewErr
			}
			views = append(views, view)
			pos = len(views) - 1
			index[id] = pos
		}

		if itemName == nil || !unitPrice.Valid || quantity == nil {
			continue
		}
		price, priceErr := kernel.NewMoney(unitPrice.Decimal)
		if priceErr != nil {
			return nil, priceErr
		}
		views[pos].Items = append(views[pos].Items, OrderLineView{
			Name:      *itemName,
			UnitPrice: price,
			Quantity:  *quantity,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}

func newOrderView(
	id uuid.UUID,
	token string,
	email string,
	total decimal.Decimal,
	paymentMethod string,
	status int,
	createdAt time.Time,
) (OrderView, error) {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderView{}, err
	}
	amount, err := kernel.NewMoney(total)
	if err != nil {
		return OrderView{}, err
	}
	return OrderView{
		ID:            orderID,
		Token:         token,
		CustomerEmail: email,
		Items:         make([]OrderLineView, 0),
		Total:         amount,
		PaymentMethod: paymentMethod,
		Status:        order.Status(status),
		CreatedAt:     createdAt,
	}, nil
}
