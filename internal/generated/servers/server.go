// Package servers holds the HTTP contract of the cafeteria API: the embedded
// OpenAPI document, the request and response models it describes, and the echo
// wiring that binds path, header and security parameters before calling a
// ServerInterface implementation.
package servers

import (
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	BearerAuthScopes = "bearerAuth.Scopes"
)

// Defines values for OrderStatus.
const (
	Cancelled OrderStatus = "Cancelled"
	Delivered OrderStatus = "Delivered"
	Pending   OrderStatus = "Pending"
	Ready     OrderStatus = "Ready"
)

// Account defines model for Account.
type Account struct {
	Email string             `json:"email"`
	Id    openapi_types.UUID `json:"id"`
	Role  string             `json:"role"`
}

// CartLine defines model for CartLine.
type CartLine struct {
	Name string `json:"name"`

	// Price Ignored, the menu price is authoritative
	Price    *float64 `json:"price,omitempty"`
	Quantity int      `json:"quantity"`
}

// Error defines model for Error.
type Error struct {
	Code         int     `json:"code"`
	Message      string  `json:"message"`
	Reason       *string `json:"reason,omitempty"`
	RequiredRole *string `json:"requiredRole,omitempty"`
	Role         *string `json:"role,omitempty"`
}

// LoginRequest defines model for LoginRequest.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginResponse defines model for LoginResponse.
type LoginResponse struct {
	ExpiresAt time.Time `json:"expiresAt"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
}

// MenuItem defines model for MenuItem.
type MenuItem struct {
	Id    openapi_types.UUID `json:"id"`
	Name  string             `json:"name"`
	Price float64            `json:"price"`
}

// MenuItemInput defines model for MenuItemInput.
type MenuItemInput struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Order defines model for Order.
type Order struct {
	CreatedAt     time.Time          `json:"createdAt"`
	Email         string             `json:"email"`
	Id            openapi_types.UUID `json:"id"`
	Items         []OrderLine        `json:"items"`
	PaymentMethod string             `json:"paymentMethod"`
	Status        OrderStatus        `json:"status"`
	Token         string             `json:"token"`
	Total         float64            `json:"total"`
}

// OrderLine defines model for OrderLine.
type OrderLine struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderStatus defines model for OrderStatus.
type OrderStatus string

// PlaceOrderRequest defines model for PlaceOrderRequest.
type PlaceOrderRequest struct {
	Email         string     `json:"email"`
	Items         []CartLine `json:"items"`
	PaymentMethod *string    `json:"paymentMethod,omitempty"`
}

// RegisterRequest defines model for RegisterRequest.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	// Role user or admin, defaults to user
	Role *string `json:"role,omitempty"`
}

// StatusUpdate defines model for StatusUpdate.
type StatusUpdate struct {
	Status string `json:"status"`
}

// ID defines model for ID.
type ID = openapi_types.UUID

// PlaceOrderParams defines parameters for PlaceOrder.
type PlaceOrderParams struct {
	IdempotencyKey *string `json:"Idempotency-Key,omitempty"`
}

// RegisterUserJSONRequestBody defines body for RegisterUser for application/json ContentType.
type RegisterUserJSONRequestBody = RegisterRequest

// LoginJSONRequestBody defines body for Login for application/json ContentType.
type LoginJSONRequestBody = LoginRequest

// AddMenuItemJSONRequestBody defines body for AddMenuItem for application/json ContentType.
type AddMenuItemJSONRequestBody = MenuItemInput

// UpdateMenuItemJSONRequestBody defines body for UpdateMenuItem for application/json ContentType.
type UpdateMenuItemJSONRequestBody = MenuItemInput

// PlaceOrderJSONRequestBody defines body for PlaceOrder for application/json ContentType.
type PlaceOrderJSONRequestBody = PlaceOrderRequest

// UpdateOrderStatusJSONRequestBody defines body for UpdateOrderStatus for application/json ContentType.
type UpdateOrderStatusJSONRequestBody = StatusUpdate

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Exchange email, password and role for a credential
	// (POST /api/auth/login)
	Login(ctx echo.Context) error
	// Create an account
	// (POST /api/auth/register)
	RegisterUser(ctx echo.Context) error
	// List the menu ordered by name
	// (GET /api/menu)
	ListMenu(ctx echo.Context) error
	// Add a dish
	// (POST /api/menu)
	AddMenuItem(ctx echo.Context) error
	// Remove a dish
	// (DELETE /api/menu/{id})
	DeleteMenuItem(ctx echo.Context, id ID) error
	// Rename or reprice a dish
	// (PUT /api/menu/{id})
	UpdateMenuItem(ctx echo.Context, id ID) error
	// Place an order priced from the menu
	// (POST /api/order)
	PlaceOrder(ctx echo.Context, params PlaceOrderParams) error
	// Every order, newest first
	// (GET /api/order/admin/all)
	ListAllOrders(ctx echo.Context) error
	// Orders of one customer, newest first
	// (GET /api/order/user/{email})
	GetOrderHistory(ctx echo.Context, email string) error
	// Move an order to another status
	// (PUT /api/order/{id})
	UpdateOrderStatus(ctx echo.Context, id ID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// Login converts echo context to params.
func (w *ServerInterfaceWrapper) Login(ctx echo.Context) error {
	return w.Handler.Login(ctx)
}

// RegisterUser converts echo context to params.
func (w *ServerInterfaceWrapper) RegisterUser(ctx echo.Context) error {
	return w.Handler.RegisterUser(ctx)
}

// ListMenu converts echo context to params.
func (w *ServerInterfaceWrapper) ListMenu(ctx echo.Context) error {
	return w.Handler.ListMenu(ctx)
}

// AddMenuItem converts echo context to params.
func (w *ServerInterfaceWrapper) AddMenuItem(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{"admin"})

	return w.Handler.AddMenuItem(ctx)
}

// DeleteMenuItem converts echo context to params.
func (w *ServerInterfaceWrapper) DeleteMenuItem(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{"admin"})

	return w.Handler.DeleteMenuItem(ctx, id)
}

// UpdateMenuItem converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateMenuItem(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{"admin"})

	return w.Handler.UpdateMenuItem(ctx, id)
}

// PlaceOrder converts echo context to params.
func (w *ServerInterfaceWrapper) PlaceOrder(ctx echo.Context) error {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params PlaceOrderParams

	headers := ctx.Request().Header
	// ------------- Optional header parameter "Idempotency-Key" -------------
	if valueList, found := headers[http.CanonicalHeaderKey("Idempotency-Key")]; found {
		var idempotencyKey string
		n := len(valueList)
		if n != 1 {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for Idempotency-Key, got %d", n))
		}

		err = runtime.BindStyledParameterWithOptions("simple", "Idempotency-Key", valueList[0], &idempotencyKey,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter Idempotency-Key: %s", err))
		}

		params.IdempotencyKey = &idempotencyKey
	}

	return w.Handler.PlaceOrder(ctx, params)
}

// ListAllOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListAllOrders(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{"admin"})

	return w.Handler.ListAllOrders(ctx)
}

// GetOrderHistory converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderHistory(ctx echo.Context) error {
	// ------------- Path parameter "email" -------------
	var email string

	err := runtime.BindStyledParameterWithOptions("simple", "email", ctx.Param("email"), &email,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter email: %s", err))
	}

	return w.Handler.GetOrderHistory(ctx, email)
}

// UpdateOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{"admin"})

	return w.Handler.UpdateOrderStatus(ctx, id)
}

func bindID(ctx echo.Context) (ID, error) {
	// ------------- Path parameter "id" -------------
	var id ID

	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}

	return id, nil
}

// EchoRouter is a simple interface which specifies echo.Route addition functions which
// are present on both echo.Echo and echo.Group, since we want to allow using
// either of them for path registration.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the
// paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/auth/login", wrapper.Login)
	router.POST(baseURL+"/api/auth/register", wrapper.RegisterUser)
	router.GET(baseURL+"/api/menu", wrapper.ListMenu)
	router.POST(baseURL+"/api/menu", wrapper.AddMenuItem)
	router.DELETE(baseURL+"/api/menu/:id", wrapper.DeleteMenuItem)
	router.PUT(baseURL+"/api/menu/:id", wrapper.UpdateMenuItem)
	router.POST(baseURL+"/api/order", wrapper.PlaceOrder)
	router.GET(baseURL+"/api/order/admin/all", wrapper.ListAllOrders)
	router.GET(baseURL+"/api/order/user/:email", wrapper.GetOrderHistory)
	router.PUT(baseURL+"/api/order/:id", wrapper.UpdateOrderStatus)
}

//go:embed openapi.yaml
var rawSpec []byte

// RawSpec returns the OpenAPI document as embedded, in YAML.
func RawSpec() []byte {
	return rawSpec
}

// GetSwagger returns the parsed OpenAPI document. Every call parses a fresh copy,
// so callers may mutate the result (for instance clear Servers before routing).
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading Swagger: %w", err)
	}
	return swagger, nil
}
