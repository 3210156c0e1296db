package commands

import (
	"errors"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/guard"
)

var ErrDeleteMenuItemCommandIsNotConstructed = errors.New(
	"DeleteMenuItemCommand must be created via NewDeleteMenuItemCommand constructor",
)

// DeleteMenuItemCommand takes a dish off the menu.
type DeleteMenuItemCommand struct { //nolint:recvcheck //using for validation
	id    kernel.UUID
	actor ports.Principal

	guard guard.ConstructorGuard
}

func NewDeleteMenuItemCommand(id kernel.UUID, actor ports.Principal) (DeleteMenuItemCommand, error) {
	if err := id.Validate(); err != nil {
		return DeleteMenuItemCommand{}, err
	}

	return DeleteMenuItemCommand{
		id:    id,
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteMenuItemCommand) Validate() error {
	return c.guard.Validate(ErrDeleteMenuItemCommandIsNotConstructed)
}

func (c DeleteMenuItemCommand) ID() kernel.UUID {
	return c.id
}

func (c DeleteMenuItemCommand) Actor() ports.Principal {
	return c.actor
}
