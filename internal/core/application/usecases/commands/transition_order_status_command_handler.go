package commands

import (
	"context"
	"time"

	"cafeteria/internal/core/application/auth"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/domain/model/user"
	"cafeteria/internal/pkg/errs"
)

// TransitionOrderStatusCommandHandler applies status transitions. It is the only
// writer of an order's status.
//
// The order row is locked for the duration of the transaction, so two admins
// moving the same order are serialized while transitions of different orders
// never wait on each other.
//
// Example:
//
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // e.g. Pending -> Delivered
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown order id
//	}
type TransitionOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewTransitionOrderStatusCommandHandler creates a handler for status transitions.
func NewTransitionOrderStatusCommandHandler(uowFactory OrderUoWFactory) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle checks the actor is an admin, then loads, transitions and saves the order.
// Requesting the status the order already has succeeds without writing anything.
func (h TransitionOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := auth.Require(cmd.Actor(), user.RoleAdmin); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, errs.NewUnavailableError(storeComponent, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	current, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, storeFailure(err)
	}

	changed, err := current.TransitionTo(cmd.Status(), cmd.Actor().Subject, time.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return current, nil
	}

	if err = orderRepo.Update(ctx, current); err != nil {
		return nil, storeFailure(err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, storeFailure(err)
	}

	return current, nil
}
