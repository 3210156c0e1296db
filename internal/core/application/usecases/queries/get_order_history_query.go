package queries

import (
	"errors"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery lists the orders placed under one email address, newest first.
// It is public: anyone who knows the address may read its history.
//
// Example:
//
//	query := NewGetOrderHistoryQuery("B@X.com")
//	orders, err := handler.Handle(ctx, query)
type GetOrderHistoryQuery struct {
	email kernel.Email

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery normalizes the address the same way placement does,
// so lookups ignore case and surrounding blanks. An address placement would
// refuse cannot own orders; it leaves Email at its zero value.
func NewGetOrderHistoryQuery(email string) GetOrderHistoryQuery {
	normalized, _ := kernel.NewEmail(email)
	return GetOrderHistoryQuery{
		email: normalized,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// Email is the zero value when the address could never have placed an order.
func (q GetOrderHistoryQuery) Email() kernel.Email {
	return q.email
}
