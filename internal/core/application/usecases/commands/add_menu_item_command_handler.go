package commands

import (
	"context"

	"cafeteria/internal/core/application/auth"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/menu"
	"cafeteria/internal/core/domain/model/user"
	"cafeteria/internal/pkg/errs"
)

// AddMenuItemCommandHandler stores new dishes. Admin only; a duplicate name
// (ignoring case) is reported by the repository as errs.ConflictError.
type AddMenuItemCommandHandler struct {
	uowFactory MenuUoWFactory
}

func NewAddMenuItemCommandHandler(uowFactory MenuUoWFactory) AddMenuItemCommandHandler {
	return AddMenuItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle validates the dish through menu.NewItem and persists it.
func (h AddMenuItemCommandHandler) Handle(ctx context.Context, cmd AddMenuItemCommand) (*menu.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := auth.Require(cmd.Actor(), user.RoleAdmin); err != nil {
		return nil, err
	}

	item, err := menu.NewItem(kernel.NewUUID(), cmd.Name(), cmd.Price())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, errs.NewUnavailableError("menu store", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.MenuRepository().Add(ctx, item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}
