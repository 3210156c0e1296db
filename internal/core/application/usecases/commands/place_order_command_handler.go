package commands

import (
	"context"
	"errors"
	"time"

	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/domain/services"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/pkg/errs"
)

// maxTokenAttempts bounds how often a placement draws a new token after the
// store reported the previous one as taken.
const maxTokenAttempts = 3

// PlaceOrderCommandHandler places orders: it prices the cart from the menu, draws
// a token from the sequencer and stores the order in Pending status, all in one
// transaction. A failed placement leaves nothing behind.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, idempotencyStore)
//	placed, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // a dish is not on the menu
//	case errors.Is(err, errs.ErrUnavailable):
//	    // the sequencer or the store is down, the client may retry
//	}
type PlaceOrderCommandHandler struct {
	uowFactory  PlacementUoWFactory
	idempotency ports.IdempotencyStore
	pricer      services.OrderPricer
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// idempotency may be nil, in which case Idempotency-Key values are ignored.
func NewPlaceOrderCommandHandler(
	uowFactory PlacementUoWFactory,
	idempotency ports.IdempotencyStore,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory:  uowFactory,
		idempotency: idempotency,
		pricer:      services.NewOrderPricer(),
	}
}

// Handle places the order and returns it, including its fresh token.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	key := cmd.IdempotencyKey()
	if key != "" && h.idempotency != nil {
		reserved, err := h.idempotency.Reserve(ctx, key)
		if err != nil {
			return nil, errs.NewUnavailableError("idempotency store", err)
		}
		if !reserved {
			return nil, errs.NewConflictError("idempotency key", key)
		}
	}

	placed, err := h.place(ctx, cmd)
	if err != nil && key != "" && h.idempotency != nil {
		// The key stays usable for a retry of a request that did not go through.
		_ = h.idempotency.Release(context.WithoutCancel(ctx), key)
	}

	return placed, err
}

func (h PlaceOrderCommandHandler) place(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, errs.NewUnavailableError(storeComponent, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	catalog, err := uow.MenuRepository().GetByNames(ctx, cmd.ItemNames())
	if err != nil {
		return nil, storeFailure(err)
	}

	items, err := h.pricer.Price(cmd.Lines(), catalog)
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	sequencer := uow.OrderSequencer()

	var placed *order.Order
	for attempt := 1; ; attempt++ {
		token, seqErr := sequencer.Next(ctx)
		if seqErr != nil {
			return nil, storeFailure(seqErr)
		}

		placed, err = order.NewOrder(kernel.NewUUID(), token, cmd.Email(), items, cmd.PaymentMethod(), time.Now())
		if err != nil {
			return nil, err
		}

		err = orderRepo.Add(ctx, placed)
		if err == nil {
			break
		}
		if !isTokenConflict(err) || attempt == maxTokenAttempts {
			return nil, storeFailure(err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, storeFailure(err)
	}

	return placed, nil
}

func isTokenConflict(err error) bool {
	var conflict *errs.ConflictError
	return errors.As(err, &conflict) && conflict.ParamName == "token"
}
