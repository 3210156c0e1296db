package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing credential", errs.NewRejectedError(errs.ReasonMissingCredential), http.StatusUnauthorized},
		{"expired", errs.NewRejectedError(errs.ReasonExpired), http.StatusUnauthorized},
		{"invalid credentials", errs.NewRejectedError(errs.ReasonInvalidCredentials), http.StatusUnauthorized},
		{"insufficient role", errs.NewInsufficientRoleError("user", "admin"), http.StatusForbidden},
		{"role mismatch", errs.NewRoleMismatchError("user", "admin"), http.StatusForbidden},
		{"duplicate email", errs.NewConflictError("email", "a@x.com"), http.StatusConflict},
		{"invalid transition", errs.NewInvalidTransitionError(order.Ready, order.Pending), http.StatusConflict},
		{"not found", errs.NewObjectNotFoundError("order", "42"), http.StatusNotFound},
		{"invalid", errs.NewValueIsInvalidError("status"), http.StatusBadRequest},
		{"required", errs.NewValueIsRequiredError("email"), http.StatusBadRequest},
		{"out of range", errs.NewValueIsOutOfRangeError("quantity", 0, 1, 100), http.StatusBadRequest},
		{"unavailable", errs.NewUnavailableError("order sequencer", errors.New("conn refused")), http.StatusServiceUnavailable},
		{"wrapped", fmt.Errorf("place: %w", errs.NewConflictError("token", "CAF-1001")), http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(tt.err))
		})
	}
}

func TestWriteError_Unavailable(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/order", nil), rec)

	err := writeError(ctx, errs.NewUnavailableErrorWithRetry("order sequencer", 1500*time.Millisecond, errors.New("dial tcp")))

	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.NotContains(t, rec.Body.String(), "dial tcp")
}

func TestWriteError_InternalErrorIsNotLeaked(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/menu", nil), rec)

	require.NoError(t, writeError(ctx, errors.New("pq: password authentication failed")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}
