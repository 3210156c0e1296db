package commands

import (
	"context"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/menu"
	"cafeteria/internal/pkg/errs"
)

// SeedMenuCommandHandler inserts the default dishes when, and only when, the menu is empty.
// Running it on every start is safe.
type SeedMenuCommandHandler struct {
	uowFactory MenuUoWFactory
}

func NewSeedMenuCommandHandler(uowFactory MenuUoWFactory) SeedMenuCommandHandler {
	return SeedMenuCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns how many dishes were inserted, zero when the menu already had items.
func (h SeedMenuCommandHandler) Handle(ctx context.Context, cmd SeedMenuCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, errs.NewUnavailableError("menu store", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	menuRepo := uow.MenuRepository()
	count, err := menuRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	entries := cmd.Entries()
	for _, entry := range entries {
		item, itemErr := menu.NewItem(kernel.NewUUID(), entry.Name, entry.Price)
		if itemErr != nil {
			return 0, itemErr
		}
		if err = menuRepo.Add(ctx, item); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(entries), nil
}
