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

func TestRejectedError(t *testing.T) {
	t.Run("NewRejectedError", func(t *testing.T) {
		err := errs.NewRejectedError(errs.ReasonExpired)

		assert.Equal(t, errs.ReasonExpired, err.Reason)
		require.NoError(t, err.Cause)
		assert.Equal(t, "request rejected: Expired", err.Error())
		assert.Equal(t, errs.ErrRejected, err.Unwrap())
	})

	t.Run("NewRejectedErrorWithCause", func(t *testing.T) {
		cause := errors.New("bad base64")
		err := errs.NewRejectedErrorWithCause(errs.ReasonMalformed, cause)

		assert.Equal(t, "request rejected: Malformed (cause: bad base64)", err.Error())
	})

	t.Run("reason can be extracted from a wrapped error", func(t *testing.T) {
		wrapped := fmt.Errorf("authorize: %w", errs.NewRejectedError(errs.ReasonInsufficientRole))

		reason, ok := errs.RejectReasonOf(wrapped)
		require.True(t, ok)
		assert.Equal(t, errs.ReasonInsufficientRole, reason)
		require.ErrorIs(t, wrapped, errs.ErrRejected)
	})

	t.Run("reason is absent for unrelated errors", func(t *testing.T) {
		_, ok := errs.RejectReasonOf(errors.New("boom"))
		assert.False(t, ok)
	})

	t.Run("insufficient role names both roles", func(t *testing.T) {
		err := errs.NewInsufficientRoleError("user", "admin")

		assert.Equal(t, errs.ReasonInsufficientRole, err.Reason)
		assert.Equal(t, "user", err.Role)
		assert.Equal(t, "admin", err.RequiredRole)
		assert.Equal(t, "request rejected: InsufficientRole (role is user, required role is admin)", err.Error())
	})

	t.Run("forbidden reasons", func(t *testing.T) {
		assert.True(t, errs.ReasonInsufficientRole.IsForbidden())
		assert.True(t, errs.ReasonRoleMismatch.IsForbidden())
		assert.False(t, errs.ReasonExpired.IsForbidden())
		assert.False(t, errs.ReasonInvalidCredentials.IsForbidden())
	})
}

func TestConflictError(t *testing.T) {
	err := errs.NewConflictError("email", "a@b.c")

	assert.Equal(t, "conflict: email a@b.c already exists", err.Error())
	require.ErrorIs(t, err, errs.ErrConflict)

	withCause := errs.NewConflictErrorWithCause("token", "CAF-1001", errors.New("23505"))
	assert.Equal(t, "conflict: token CAF-1001 already exists (cause: 23505)", withCause.Error())
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError(order.Delivered, order.Pending)

	assert.Equal(t, "invalid transition: Delivered -> Pending", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestUnavailableError(t *testing.T) {
	cause := errors.New("connection refused")
	err := errs.NewUnavailableErrorWithRetry("redis", 5*time.Second, cause)

	assert.Equal(t, "service unavailable: redis (cause: connection refused)", err.Error())
	assert.Equal(t, 5*time.Second, err.RetryAfter)
	require.ErrorIs(t, err, errs.ErrUnavailable)

	plain := errs.NewUnavailableError("postgres", nil)
	assert.Equal(t, "service unavailable: postgres", plain.Error())
	assert.Zero(t, plain.RetryAfter)
}
