package commands

import (
	"context"

	"cafeteria/internal/core/application/auth"
	"cafeteria/internal/core/domain/model/menu"
	"cafeteria/internal/core/domain/model/user"
	"cafeteria/internal/pkg/errs"
)

// DeleteMenuItemCommandHandler removes dishes. Admin only. Orders keep their
// lines, which carry the dish name and price by value.
type DeleteMenuItemCommandHandler struct {
	uowFactory MenuUoWFactory
}

func NewDeleteMenuItemCommandHandler(uowFactory MenuUoWFactory) DeleteMenuItemCommandHandler {
	return DeleteMenuItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the removed item, or errs.ObjectNotFoundError for an unknown id.
func (h DeleteMenuItemCommandHandler) Handle(ctx context.Context, cmd DeleteMenuItemCommand) (*menu.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := auth.Require(cmd.Actor(), user.RoleAdmin); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, errs.NewUnavailableError("menu store", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	menuRepo := uow.MenuRepository()
	item, err := menuRepo.Get(ctx, cmd.ID())
	if err != nil {
		return nil, err
	}

	if err = menuRepo.Delete(ctx, cmd.ID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}
