package ports

import (
	"context"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/menu"
)

// MenuRepository defines the persistence contract for menu items.
type MenuRepository interface {
	// Add stores a new item. A name already on the menu (ignoring case)
	// is reported as errs.ConflictError with ParamName "menu item".
	Add(ctx context.Context, item *menu.Item) error

	// Update stores a changed name or price.
	Update(ctx context.Context, item *menu.Item) error

	// Delete removes an item. Returns errs.ObjectNotFoundError for an unknown id.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves an item by identifier.
	Get(ctx context.Context, id kernel.UUID) (*menu.Item, error)

	// GetByNames returns the items whose names match any of names, ignoring case.
	// Names that match nothing are simply absent from the result.
	GetByNames(ctx context.Context, names []string) ([]*menu.Item, error)

	// Count returns the number of items on the menu.
	Count(ctx context.Context) (int64, error)
}
