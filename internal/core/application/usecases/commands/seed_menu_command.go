package commands

import (
	"errors"
	"fmt"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"
	"cafeteria/internal/pkg/guard"
)

var ErrSeedMenuCommandIsNotConstructed = errors.New(
	"SeedMenuCommand must be created via NewSeedMenuCommand constructor",
)

// SeedMenuEntry is one dish of the default menu.
type SeedMenuEntry struct {
	Name  string
	Price kernel.Money
}

// SeedMenuCommand fills an empty menu with the default dishes at start-up.
type SeedMenuCommand struct {
	entries []SeedMenuEntry

	guard guard.ConstructorGuard
}

func NewSeedMenuCommand(entries []SeedMenuEntry) (SeedMenuCommand, error) {
	if len(entries) == 0 {
		return SeedMenuCommand{}, errs.NewValueIsRequiredError("menu seed")
	}
	for idx, entry := range entries {
		if !entry.Price.IsPositive() {
			return SeedMenuCommand{}, errs.NewValueIsInvalidErrorWithCause(
				"menu seed",
				fmt.Errorf("entry %d (%q) has no positive price", idx, entry.Name),
			)
		}
	}

	copied := make([]SeedMenuEntry, len(entries))
	copy(copied, entries)

	return SeedMenuCommand{
		entries: copied,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SeedMenuCommand) Validate() error {
	return c.guard.Validate(ErrSeedMenuCommandIsNotConstructed)
}

func (c SeedMenuCommand) Entries() []SeedMenuEntry {
	entries := make([]SeedMenuEntry, len(c.entries))
	copy(entries, c.entries)
	return entries
}
