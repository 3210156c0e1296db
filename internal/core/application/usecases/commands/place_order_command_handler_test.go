package commands_test

import (
	"errors"
	"testing"

	"cafeteria/internal/core/application/usecases/commands"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/menu"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/domain/services"
	"cafeteria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func teaMenu(t *testing.T) []*menu.Item {
	t.Helper()
	price, err := kernel.MoneyFromFloat(20)
	require.NoError(t, err)
	tea, err := menu.NewItem(kernel.NewUUID(), "Tea", price)
	require.NoError(t, err)
	return []*menu.Item{tea}
}

func mustToken(t *testing.T, count int64) order.Token {
	t.Helper()
	token, err := order.NextToken(order.DefaultTokenPrefix, count)
	require.NoError(t, err)
	return token
}

func teaOrderCommand(t *testing.T, key string) commands.PlaceOrderCommand {
	t.Helper()
	cmd, err := commands.NewPlaceOrderCommand(
		" B@X.com ",
		[]services.CartLine{{Name: "tea", Quantity: 2}},
		"Cash",
		key,
	)
	require.NoError(t, err)
	return cmd
}

func TestNewPlaceOrderCommand(t *testing.T) {
	t.Run("normalizes email", func(t *testing.T) {
		cmd := teaOrderCommand(t, "")
		assert.Equal(t, "b@x.com", cmd.Email().String())
		assert.Equal(t, []string{"tea"}, cmd.ItemNames())
	})

	t.Run("missing email", func(t *testing.T) {
		_, err := commands.NewPlaceOrderCommand("  ", []services.CartLine{{Name: "Tea", Quantity: 1}}, "Cash", "")
		require.ErrorIs(t, err, commands.ErrMissingEmail)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("empty cart", func(t *testing.T) {
		_, err := commands.NewPlaceOrderCommand("b@x.com", nil, "Cash", "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero quantity", func(t *testing.T) {
		_, err := commands.NewPlaceOrderCommand("b@x.com", []services.CartLine{{Name: "Tea", Quantity: 0}}, "", "")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("duplicate names are loaded once", func(t *testing.T) {
		cmd, err := commands.NewPlaceOrderCommand("b@x.com", []services.CartLine{
			{Name: "Tea", Quantity: 1},
			{Name: "TEA ", Quantity: 1},
			{Name: "Sandwich", Quantity: 1},
		}, "", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"Tea", "Sandwich"}, cmd.ItemNames())
	})
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := teaOrderCommand(t, "")

	menuRepo := new(MockMenuRepository)
	orderRepo := new(MockOrderRepository)
	sequencer := new(MockOrderSequencer)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("MenuRepository").Return(menuRepo).Once(),
		menuRepo.On("GetByNames", ctx, []string{"tea"}).Return(teaMenu(t), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("OrderSequencer").Return(sequencer).Once(),
		sequencer.On("Next", ctx).Return(mustToken(t, 0), nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, nil)
	placed, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "CAF-1001", placed.Token().String())
	assert.Equal(t, order.Pending, placed.Status())
	assert.Equal(t, "b@x.com", placed.Customer().String())
	assert.Equal(t, "40.00", placed.Total().String())
	assert.Equal(t, "Tea", placed.Items()[0].Name())
	menuRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	sequencer.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_RetriesTakenToken(t *testing.T) {
	ctx := t.Context()
	cmd := teaOrderCommand(t, "")

	menuRepo := new(MockMenuRepository)
	orderRepo := new(MockOrderRepository)
	sequencer := new(MockOrderSequencer)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("MenuRepository").Return(menuRepo).Once()
	menuRepo.On("GetByNames", ctx, []string{"tea"}).Return(teaMenu(t), nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("OrderSequencer").Return(sequencer).Once()
	sequencer.On("Next", ctx).Return(mustToken(t, 0), nil).Once()
	sequencer.On("Next", ctx).Return(mustToken(t, 1), nil).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Return(errs.NewConflictError("token", "CAF-1001")).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, nil)
	placed, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "CAF-1002", placed.Token().String())
	sequencer.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_GivesUpAfterRepeatedTokenConflicts(t *testing.T) {
	ctx := t.Context()
	cmd := teaOrderCommand(t, "")

	menuRepo := new(MockMenuRepository)
	orderRepo := new(MockOrderRepository)
	sequencer := new(MockOrderSequencer)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("MenuRepository").Return(menuRepo).Once()
	menuRepo.On("GetByNames", ctx, []string{"tea"}).Return(teaMenu(t), nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("OrderSequencer").Return(sequencer).Once()
	sequencer.On("Next", ctx).Return(mustToken(t, 0), nil).Times(3)
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Return(errs.NewConflictError("token", "CAF-1001")).Times(3)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, nil)
	placed, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Nil(t, placed)
	uow.AssertNotCalled(t, "Commit", ctx)
	sequencer.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_SequencerUnavailable(t *testing.T) {
	ctx := t.Context()
	cmd := teaOrderCommand(t, "")

	menuRepo := new(MockMenuRepository)
	orderRepo := new(MockOrderRepository)
	sequencer := new(MockOrderSequencer)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("MenuRepository").Return(menuRepo).Once()
	menuRepo.On("GetByNames", ctx, []string{"tea"}).Return(teaMenu(t), nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("OrderSequencer").Return(sequencer).Once()
	sequencer.On("Next", ctx).
		Return(order.Token{}, errs.NewUnavailableError("order sequencer", errors.New("connection refused"))).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, nil)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrUnavailable)
	orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestPlaceOrderCommandHandler_Handle_UnknownDish(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPlaceOrderCommand("b@x.com", []services.CartLine{{Name: "Caviar", Quantity: 1}}, "", "")
	require.NoError(t, err)

	menuRepo := new(MockMenuRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("MenuRepository").Return(menuRepo).Once()
	menuRepo.On("GetByNames", ctx, []string{"Caviar"}).Return([]*menu.Item{}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, nil)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "OrderSequencer")
}

func TestPlaceOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := teaOrderCommand(t, "")

	uow := new(MockUoW)
	factory := new(MockPlacementUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewPlaceOrderCommandHandler(factory, nil)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUnavailable)
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockPlacementUoWFactory)
	h := commands.NewPlaceOrderCommandHandler(factory, nil)

	_, err := h.Handle(t.Context(), commands.PlaceOrderCommand{})

	require.ErrorIs(t, err, commands.ErrPlaceOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestPlaceOrderCommandHandler_Handle_ReusedIdempotencyKey(t *testing.T) {
	ctx := t.Context()
	cmd := teaOrderCommand(t, "checkout-42")

	store := new(MockIdempotencyStore)
	store.On("Reserve", ctx, "checkout-42").Return(false, nil).Once()
	factory := new(MockPlacementUoWFactory)

	h := commands.NewPlaceOrderCommandHandler(factory, store)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	factory.AssertNotCalled(t, "Create")
	store.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_ReleasesKeyOnFailure(t *testing.T) {
	ctx := t.Context()
	cmd := teaOrderCommand(t, "checkout-43")

	store := new(MockIdempotencyStore)
	store.On("Reserve", ctx, "checkout-43").Return(true, nil).Once()
	store.On("Release", mock.Anything, "checkout-43").Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()
	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, store)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	store.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_IdempotencyStoreDown(t *testing.T) {
	ctx := t.Context()
	cmd := teaOrderCommand(t, "checkout-44")

	store := new(MockIdempotencyStore)
	store.On("Reserve", ctx, "checkout-44").Return(false, errors.New("dial tcp: refused")).Once()
	factory := new(MockPlacementUoWFactory)

	h := commands.NewPlaceOrderCommandHandler(factory, store)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrUnavailable)
	factory.AssertNotCalled(t, "Create")
}

func TestPlaceOrderCommandHandler_Handle_MenuLookupUnavailable(t *testing.T) {
	ctx := t.Context()
	cmd := teaOrderCommand(t, "")

	menuRepo := new(MockMenuRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("MenuRepository").Return(menuRepo).Once()
	menuRepo.On("GetByNames", ctx, []string{"tea"}).Return(nil, errors.New("driver: bad connection")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockPlacementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, nil)
	placed, err := h.Handle(ctx, cmd)

	var unavailable *errs.UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "order store", unavailable.Component)
	assert.Nil(t, placed)
	uow.AssertNotCalled(t, "OrderSequencer")
}

func TestPlaceOrderCommandHandler_Handle_StoreFailuresAreUnavailable(t *testing.T) {
	tests := map[string]struct {
		addErr    error
		commitErr error
	}{
		"insert":         {addErr: errors.New("driver: bad connection")},
		"commit":         {commitErr: errors.New("driver: bad connection")},
		"other conflict": {addErr: errs.NewConflictError("id", "taken")},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			cmd := teaOrderCommand(t, "")

			menuRepo := new(MockMenuRepository)
			orderRepo := new(MockOrderRepository)
			sequencer := new(MockOrderSequencer)
			uow := new(MockUoW)
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("MenuRepository").Return(menuRepo).Once()
			menuRepo.On("GetByNames", ctx, []string{"tea"}).Return(teaMenu(t), nil).Once()
			uow.On("OrderRepository").Return(orderRepo).Once()
			uow.On("OrderSequencer").Return(sequencer).Once()
			sequencer.On("Next", ctx).Return(mustToken(t, 0), nil).Once()
			orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(tt.addErr).Once()
			if tt.addErr == nil {
				uow.On("Commit", ctx).Return(tt.commitErr).Once()
			}
			uow.On("Rollback", ctx).Return(nil).Once()

			factory := new(MockPlacementUoWFactory)
			factory.On("Create").Return(uow).Once()

			h := commands.NewPlaceOrderCommandHandler(factory, nil)
			_, err := h.Handle(ctx, cmd)

			if errors.Is(tt.addErr, errs.ErrConflict) {
				require.ErrorIs(t, err, errs.ErrConflict)
				assert.NotErrorIs(t, err, errs.ErrUnavailable)
				return
			}
			require.ErrorIs(t, err, errs.ErrUnavailable)
			sequencer.AssertExpectations(t)
		})
	}
}
