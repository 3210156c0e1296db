package commands

import (
	"errors"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/guard"
)

var ErrUpdateMenuItemCommandIsNotConstructed = errors.New(
	"UpdateMenuItemCommand must be created via NewUpdateMenuItemCommand constructor",
)

// UpdateMenuItemCommand renames or re-prices a dish. Orders already placed keep
// the price they were charged.
type UpdateMenuItemCommand struct { //nolint:recvcheck //using for validation
	id    kernel.UUID
	name  string
	price kernel.Money
	actor ports.Principal

	guard guard.ConstructorGuard
}

func NewUpdateMenuItemCommand(
	id kernel.UUID,
	name string,
	price kernel.Money,
	actor ports.Principal,
) (UpdateMenuItemCommand, error) {
	if err := id.Validate(); err != nil {
		return UpdateMenuItemCommand{}, err
	}

	return UpdateMenuItemCommand{
		id:    id,
		name:  name,
		price: price,
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateMenuItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateMenuItemCommandIsNotConstructed)
}

func (c UpdateMenuItemCommand) ID() kernel.UUID {
	return c.id
}

func (c UpdateMenuItemCommand) Name() string {
	return c.name
}

func (c UpdateMenuItemCommand) Price() kernel.Money {
	return c.price
}

func (c UpdateMenuItemCommand) Actor() ports.Principal {
	return c.actor
}
