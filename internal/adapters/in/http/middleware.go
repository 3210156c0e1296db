package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cafeteria/internal/core/application/auth"
	"cafeteria/internal/core/domain/model/user"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/generated/servers"
	"cafeteria/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const (
	principalKey      = "cafeteria.principal"
	authorizationHead = "Authorization"
	loginPath         = "/api/auth/login"
)

// principalFrom returns the principal the request validator stored for a
// protected route.
func principalFrom(ctx echo.Context) (ports.Principal, bool) {
	principal, ok := ctx.Get(principalKey).(ports.Principal)
	return principal, ok
}

// newRequestValidator checks every request that matches an operation of the
// OpenAPI document: parameters and body against their schemas, and security
// requirements through the guard. The scope listed for bearerAuth is the role
// the operation requires. Requests the document does not describe pass through.
func newRequestValidator(swagger *openapi3.T, guard *auth.Guard) (echo.MiddlewareFunc, error) {
	// Servers would make the router match on host, which differs per deployment.
	swagger.Servers = nil

	router, err := gorillamux.NewRouter(swagger)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()

			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
					return next(ctx)
				}
				return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("request", err))
			}

			var principal *ports.Principal
			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: func(_ context.Context, in *openapi3filter.AuthenticationInput) error {
						required, err := requiredRole(in.Scopes)
						if err != nil {
							return err
						}
						p, err := guard.Authorize(in.RequestValidationInput.Request.Header.Get(authorizationHead), required)
						if err != nil {
							return err
						}
						principal = &p
						return nil
					},
				},
			}

			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return writeError(ctx, validationError(err))
			}

			if principal != nil {
				ctx.Set(principalKey, *principal)
			}
			return next(ctx)
		}
	}, nil
}

func requiredRole(scopes []string) (user.Role, error) {
	if len(scopes) != 1 {
		return "", fmt.Errorf("bearerAuth expects exactly one role scope, got %d", len(scopes))
	}
	return user.ParseRole(scopes[0])
}

// validationError turns a validator failure into the error taxonomy: the guard's
// rejection when security failed, ValueIsInvalid otherwise.
func validationError(err error) error {
	var securityErr *openapi3filter.SecurityRequirementsError
	if errors.As(err, &securityErr) {
		for _, cause := range securityErr.Errors {
			var rejected *errs.RejectedError
			if errors.As(cause, &rejected) {
				return rejected
			}
		}
		return errs.NewRejectedErrorWithCause(errs.ReasonMissingCredential, err)
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		field := strings.Join(schemaErr.JSONPointer(), ".")
		if field == "" {
			field = "body"
		}
		return errs.NewValueIsInvalidErrorWithCause(field, errors.New(schemaErr.Reason))
	}

	var requestErr *openapi3filter.RequestError
	if errors.As(err, &requestErr) {
		name := "request"
		if requestErr.Parameter != nil {
			name = requestErr.Parameter.Name
		}
		reason := requestErr.Reason
		if reason == "" && requestErr.Err != nil {
			reason = requestErr.Err.Error()
		}
		return errs.NewValueIsInvalidErrorWithCause(name, errors.New(reason))
	}

	return errs.NewValueIsInvalidErrorWithCause("request", err)
}

// newLoginRateLimiter throttles login attempts per client IP. Other routes are
// not limited.
func newLoginRateLimiter(perSecond float64) echo.MiddlewareFunc {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(ctx echo.Context) bool {
			return ctx.Path() != loginPath
		},
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(ctx echo.Context, err error) error {
			return ctx.JSON(http.StatusForbidden, servers.Error{Code: http.StatusForbidden, Message: err.Error()})
		},
		DenyHandler: func(ctx echo.Context, _ string, _ error) error {
			return ctx.JSON(http.StatusTooManyRequests, servers.Error{
				Code:    http.StatusTooManyRequests,
				Message: "too many login attempts, slow down",
			})
		},
	})
}

// newRequestLogger logs one line per request through slog.
func newRequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(ctx echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(ctx.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
