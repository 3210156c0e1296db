package menu

import (
	"errors"
	"fmt"
	"strings"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/pkg/errs"
	"cafeteria/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item was not created through NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("menu Item must be created via NewItem constructor")

// maxNameLength bounds item names to what the menu board can show.
const maxNameLength = 100

// Item is a dish on the cafeteria menu.
//
// Invariants:
//   - Name is non-empty after trimming and at most 100 characters
//   - Price is strictly positive
//   - Names are unique ignoring case; NameKey is the value the store indexes
type Item struct {
	id    kernel.UUID
	name  string
	price kernel.Money

	guard guard.ConstructorGuard
}

// NewItem creates a menu item with a fresh identifier.
func NewItem(id kernel.UUID, name string, price kernel.Money) (*Item, error) {
	item := &Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setID(id),
		item.setName(name),
		item.setPrice(price),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem rebuilds an item read from storage.
func RestoreItem(id kernel.UUID, name string, price kernel.Money) (*Item, error) {
	return NewItem(id, name, price)
}

// Validate ensures the item was created through a constructor.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) Name() string {
	return i.name
}

func (i *Item) Price() kernel.Money {
	return i.price
}

// NameKey is the case-insensitive form of the name used for uniqueness and lookups.
func (i *Item) NameKey() string {
	return NameKey(i.name)
}

// Change replaces name and price together; nothing changes if either is invalid.
func (i *Item) Change(name string, price kernel.Money) error {
	if err := i.Validate(); err != nil {
		return err
	}

	updated := *i
	if err := errors.Join(updated.setName(name), updated.setPrice(price)); err != nil {
		return err
	}

	i.name = updated.name
	i.price = updated.price
	return nil
}

// NameKey normalizes a dish name for comparison.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if len([]rune(trimmed)) > maxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", len([]rune(trimmed)), 1, maxNameLength)
	}
	i.name = trimmed
	return nil
}

func (i *Item) setPrice(price kernel.Money) error {
	if !price.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is not greater than 0", price))
	}
	i.price = price
	return nil
}
