package http

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"cafeteria/internal/generated/servers"
	"cafeteria/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// defaultRetryAfter is sent with a 503 when the failing component gave no hint.
const defaultRetryAfter = 5

// statusOf maps the error taxonomy onto HTTP status codes.
func statusOf(err error) int {
	var rejected *errs.RejectedError
	switch {
	case errors.As(err, &rejected):
		if rejected.Reason.IsForbidden() {
			return http.StatusForbidden
		}
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorBody renders err for the client. Internal errors get a generic message
// so driver or key material never reaches the response.
func errorBody(status int, err error) servers.Error {
	body := servers.Error{
		Code:    status,
		Message: err.Error(),
	}
	if status == http.StatusInternalServerError {
		body.Message = http.StatusText(status)
	}

	var rejected *errs.RejectedError
	if errors.As(err, &rejected) {
		reason := string(rejected.Reason)
		body.Reason = &reason
		body.Message = "request rejected: " + reason
		if rejected.Role != "" {
			role := rejected.Role
			body.Role = &role
		}
		if rejected.RequiredRole != "" {
			required := rejected.RequiredRole
			body.RequiredRole = &required
		}
	}

	var unavailable *errs.UnavailableError
	if errors.As(err, &unavailable) {
		body.Message = unavailable.Component + " is unavailable, retry later"
	}

	return body
}

// writeError answers the request with the mapped status and body.
func writeError(ctx echo.Context, err error) error {
	status := statusOf(err)

	var unavailable *errs.UnavailableError
	if errors.As(err, &unavailable) {
		seconds := defaultRetryAfter
		if unavailable.RetryAfter > 0 {
			seconds = int(math.Ceil(unavailable.RetryAfter.Seconds()))
		}
		ctx.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	return ctx.JSON(status, errorBody(status, err))
}

// newErrorHandler replaces echo's default handler so that router and binding
// errors share the Error body of the API. Unmapped errors are logged.
func newErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			message := http.StatusText(httpErr.Code)
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
			_ = ctx.JSON(httpErr.Code, servers.Error{Code: httpErr.Code, Message: message})
			return
		}

		if statusOf(err) == http.StatusInternalServerError {
			logger.ErrorContext(ctx.Request().Context(), "request failed",
				"method", ctx.Request().Method,
				"path", ctx.Path(),
				"error", err,
			)
		}
		_ = writeError(ctx, err)
	}
}
