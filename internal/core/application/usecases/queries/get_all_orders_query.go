package queries

import (
	"errors"

	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/guard"
)

var ErrGetAllOrdersQueryIsNotConstructed = errors.New(
	"GetAllOrdersQuery must be created via NewGetAllOrdersQuery constructor",
)

// GetAllOrdersQuery lists every order, newest first. Admin only.
type GetAllOrdersQuery struct {
	actor ports.Principal

	guard guard.ConstructorGuard
}

func NewGetAllOrdersQuery(actor ports.Principal) GetAllOrdersQuery {
	return GetAllOrdersQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllOrdersQueryIsNotConstructed)
}

func (q GetAllOrdersQuery) Actor() ports.Principal {
	return q.actor
}
