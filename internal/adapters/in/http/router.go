// Package http is the inbound HTTP adapter: an echo server implementing the
// generated OpenAPI interface, with request validation and the authorization
// guard in front of every route the document declares.
package http

import (
	"log/slog"
	"net/http"

	_ "cafeteria/docs" // swagger document for /swagger/*
	"cafeteria/internal/core/application/auth"
	"cafeteria/internal/generated/servers"
	"cafeteria/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// DefaultLoginRatePerSecond is used when the configured rate is not positive.
const DefaultLoginRatePerSecond = 5

// RouterConfig holds everything NewRouter wires together.
type RouterConfig struct {
	Server  *Server
	Guard   *auth.Guard
	Metrics *metrics.Metrics
	Logger  *slog.Logger

	LoginRatePerSecond float64
	AllowedOrigins     []string
}

// NewRouter builds the echo instance serving the API, /health, /metrics and
// the Swagger UI.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	logger := cfg.Logger.With("component", "http")

	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := newRequestValidator(swagger, cfg.Guard)
	if err != nil {
		return nil, err
	}

	rate := cfg.LoginRatePerSecond
	if rate <= 0 {
		rate = DefaultLoginRatePerSecond
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = newErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(newRequestLogger(logger))
	if len(cfg.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.AllowedOrigins,
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, "Idempotency-Key"},
		}))
	}
	if cfg.Metrics != nil {
		e.Use(cfg.Metrics.Middleware())
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics.Handler()))
	}
	e.Use(newLoginRateLimiter(rate))
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, cfg.Server)

	return e, nil
}
