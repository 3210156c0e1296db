package commands

import (
	"context"

	"cafeteria/internal/core/application/auth"
	"cafeteria/internal/core/domain/model/menu"
	"cafeteria/internal/core/domain/model/user"
	"cafeteria/internal/pkg/errs"
)

// UpdateMenuItemCommandHandler changes a dish's name and price. Admin only.
type UpdateMenuItemCommandHandler struct {
	uowFactory MenuUoWFactory
}

func NewUpdateMenuItemCommandHandler(uowFactory MenuUoWFactory) UpdateMenuItemCommandHandler {
	return UpdateMenuItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the updated item, or errs.ObjectNotFoundError for an unknown id.
func (h UpdateMenuItemCommandHandler) Handle(ctx context.Context, cmd UpdateMenuItemCommand) (*menu.Item, error) {
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

	if err = item.Change(cmd.Name(), cmd.Price()); err != nil {
		return nil, err
	}

	if err = menuRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}
