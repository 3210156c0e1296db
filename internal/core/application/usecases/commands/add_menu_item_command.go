package commands

import (
	"errors"
	"strings"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/errs"
	"cafeteria/internal/pkg/guard"
)

var ErrAddMenuItemCommandIsNotConstructed = errors.New(
	"AddMenuItemCommand must be created via NewAddMenuItemCommand constructor",
)

// AddMenuItemCommand puts a new dish on the menu.
//
// Example:
//
//	price, _ := kernel.MoneyFromFloat(20)
//	cmd, err := NewAddMenuItemCommand("Tea", price, principal)
//	item, err := handler.Handle(ctx, cmd)
type AddMenuItemCommand struct { //nolint:recvcheck //using for validation
	name  string
	price kernel.Money
	actor ports.Principal

	guard guard.ConstructorGuard
}

func NewAddMenuItemCommand(name string, price kernel.Money, actor ports.Principal) (AddMenuItemCommand, error) {
	cmd := AddMenuItemCommand{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setName(name); err != nil {
		return AddMenuItemCommand{}, err
	}
	cmd.price = price

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddMenuItemCommand) Validate() error {
	return c.guard.Validate(ErrAddMenuItemCommandIsNotConstructed)
}

func (c AddMenuItemCommand) Name() string {
	return c.name
}

func (c AddMenuItemCommand) Price() kernel.Money {
	return c.price
}

func (c AddMenuItemCommand) Actor() ports.Principal {
	return c.actor
}

func (c *AddMenuItemCommand) setName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = trimmed
	return nil
}
