package errs_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("unknown dish", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("menu item", "Caviar")

		assert.Equal(t, "menu item", err.ParamName)
		assert.Equal(t, "object not found: Caviar", err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("lookup failure keeps the cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundErrorWithCause("order", "7c9e", errors.New("no rows"))

		assert.Equal(t, "object not found: param is: order, ID is: 7c9e (cause: no rows)", err.Error())
	})

	t.Run("numeric id is printed as a number", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order sequence", 1050)

		assert.Equal(t, "object not found: 1050", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	err := errs.NewValueIsInvalidErrorWithCause("payment method", errors.New("Cheque is not accepted"))

	assert.Equal(t, "value is invalid: payment method (cause: Cheque is not accepted)", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, "value is invalid: email", errs.NewValueIsInvalidError("email").Error())
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("integer bounds", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("batch size", 5000, 1, 1000)

		assert.Equal(t, 5000, err.Value)
		assert.Equal(t, "value is invalid: 5000 is batch size, min value is 1, max value is 1000", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("open upper bound", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 0, 1, "unbounded")

		assert.Equal(t, "value is invalid: 0 is quantity, min value is 1, max value is unbounded", err.Error())
	})

	t.Run("cause is appended", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("amount", "-1.50", 0, "unbounded", errors.New("negative"))

		assert.Equal(t,
			"value is invalid: -1.50 is amount, min value is 0, max value is unbounded (cause: negative)",
			err.Error())
	})

	t.Run("multi-line values stay on one line", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("name length", "Tea\nwith milk", 1, 64)

		assert.Contains(t, err.Error(), "Tea with milk")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("email")

	assert.Equal(t, "value is required: email", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	withCause := errs.NewValueIsRequiredErrorWithCause("items", errors.New("cart is empty"))
	assert.Equal(t, "value is required: items (cause: cart is empty)", withCause.Error())
}

// Each error shape matches its own sentinel and no other, also when wrapped.
func TestErrorsMatchOnlyTheirSentinel(t *testing.T) {
	sentinels := []error{
		errs.ErrObjectNotFound,
		errs.ErrValueIsInvalid,
		errs.ErrValueIsOutOfRange,
		errs.ErrValueIsRequired,
		errs.ErrRejected,
		errs.ErrConflict,
		errs.ErrInvalidTransition,
		errs.ErrUnavailable,
	}

	tests := map[string]struct {
		err  error
		want error
	}{
		"not found":          {errs.NewObjectNotFoundError("menu item", "Caviar"), errs.ErrObjectNotFound},
		"invalid":            {errs.NewValueIsInvalidError("email"), errs.ErrValueIsInvalid},
		"out of range":       {errs.NewValueIsOutOfRangeError("quantity", 0, 1, "unbounded"), errs.ErrValueIsOutOfRange},
		"required":           {errs.NewValueIsRequiredError("email"), errs.ErrValueIsRequired},
		"rejected":           {errs.NewInsufficientRoleError("user", "admin"), errs.ErrRejected},
		"conflict":           {errs.NewConflictError("token", "CAF-1001"), errs.ErrConflict},
		"invalid transition": {errs.NewInvalidTransitionError(order.Delivered, order.Pending), errs.ErrInvalidTransition},
		"unavailable":        {errs.NewUnavailableErrorWithRetry("order store", time.Second, nil), errs.ErrUnavailable},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			wrapped := fmt.Errorf("handle: %w", tt.err)
			for _, sentinel := range sentinels {
				assert.Equal(t, sentinel == tt.want, errors.Is(wrapped, sentinel), sentinel.Error())
			}
		})
	}
}
