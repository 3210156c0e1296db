package http

import (
	"net/http"

	"cafeteria/internal/core/application/usecases/commands"
	"cafeteria/internal/core/application/usecases/queries"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/menu"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/core/domain/services"
	"cafeteria/internal/core/ports"
	"cafeteria/internal/generated/servers"
	"cafeteria/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var _ servers.ServerInterface = (*Server)(nil)

// OrderRecorder receives order counters for the metrics endpoint.
type OrderRecorder interface {
	OrderPlaced()
	OrderTransitioned(status string)
}

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	// Command handlers
	RegisterUser    commands.RegisterUserCommandHandler
	Login           commands.LoginCommandHandler
	AddMenuItem     commands.AddMenuItemCommandHandler
	UpdateMenuItem  commands.UpdateMenuItemCommandHandler
	DeleteMenuItem  commands.DeleteMenuItemCommandHandler
	PlaceOrder      commands.PlaceOrderCommandHandler
	TransitionOrder commands.TransitionOrderStatusCommandHandler

	// Query handlers
	GetMenu         queries.GetMenuQueryHandler
	GetOrderHistory queries.GetOrderHistoryQueryHandler
	GetAllOrders    queries.GetAllOrdersQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	recorder OrderRecorder
}

// NewServer creates a new HTTP server. recorder may be nil.
func NewServer(handlers Handlers, recorder OrderRecorder) *Server {
	return &Server{
		handlers: handlers,
		recorder: recorder,
	}
}

// RegisterUser handles POST /api/auth/register.
func (s *Server) RegisterUser(ctx echo.Context) error {
	var body servers.RegisterUserJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	role := ""
	if body.Role != nil {
		role = *body.Role
	}

	cmd, err := commands.NewRegisterUserCommand(body.Email, body.Password, role)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.handlers.RegisterUser.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Account{
		Id:    created.ID().Bytes(),
		Email: created.Email().String(),
		Role:  created.Role().String(),
	})
}

// Login handles POST /api/auth/login.
func (s *Server) Login(ctx echo.Context) error {
	var body servers.LoginJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewLoginCommand(body.Email, body.Password, body.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	credential, err := s.handlers.Login.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.LoginResponse{
		Token:     credential.Token,
		Role:      credential.Role.String(),
		ExpiresAt: credential.ExpiresAt,
	})
}

// ListMenu handles GET /api/menu.
func (s *Server) ListMenu(ctx echo.Context) error {
	items, err := s.handlers.GetMenu.Handle(ctx.Request().Context(), queries.NewGetMenuQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]servers.MenuItem, len(items))
	for i, item := range items {
		response[i] = servers.MenuItem{
			Id:    item.ID.Bytes(),
			Name:  item.Name,
			Price: item.Price.Float64(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AddMenuItem handles POST /api/menu.
func (s *Server) AddMenuItem(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body servers.AddMenuItemJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	price, err := kernel.MoneyFromFloat(body.Price)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAddMenuItemCommand(body.Name, price, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	item, err := s.handlers.AddMenuItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, menuItemResponse(item))
}

// UpdateMenuItem handles PUT /api/menu/{id}.
func (s *Server) UpdateMenuItem(ctx echo.Context, id servers.ID) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	itemID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var body servers.UpdateMenuItemJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	price, err := kernel.MoneyFromFloat(body.Price)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateMenuItemCommand(itemID, body.Name, price, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	item, err := s.handlers.UpdateMenuItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, menuItemResponse(item))
}

// DeleteMenuItem handles DELETE /api/menu/{id} and answers with the removed item.
func (s *Server) DeleteMenuItem(ctx echo.Context, id servers.ID) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	itemID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	cmd, err := commands.NewDeleteMenuItemCommand(itemID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	item, err := s.handlers.DeleteMenuItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, menuItemResponse(item))
}

// PlaceOrder handles POST /api/order. Client prices are ignored.
func (s *Server) PlaceOrder(ctx echo.Context, params servers.PlaceOrderParams) error {
	var body servers.PlaceOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	lines := make([]services.CartLine, len(body.Items))
	for i, item := range body.Items {
		lines[i] = services.CartLine{Name: item.Name, Quantity: item.Quantity}
	}

	paymentMethod := ""
	if body.PaymentMethod != nil {
		paymentMethod = *body.PaymentMethod
	}
	idempotencyKey := ""
	if params.IdempotencyKey != nil {
		idempotencyKey = *params.IdempotencyKey
	}

	cmd, err := commands.NewPlaceOrderCommand(body.Email, lines, paymentMethod, idempotencyKey)
	if err != nil {
		return writeError(ctx, err)
	}

	placed, err := s.handlers.PlaceOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	if s.recorder != nil {
		s.recorder.OrderPlaced()
	}

	return ctx.JSON(http.StatusCreated, orderResponse(placed))
}

// GetOrderHistory handles GET /api/order/user/{email}. Unknown or malformed
// addresses and lookup failures all answer with an empty list.
func (s *Server) GetOrderHistory(ctx echo.Context, email string) error {
	query := queries.NewGetOrderHistoryQuery(email)

	views, err := s.handlers.GetOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderViewsResponse(views))
}

// ListAllOrders handles GET /api/order/admin/all.
func (s *Server) ListAllOrders(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	views, err := s.handlers.GetAllOrders.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery(actor))
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderViewsResponse(views))
}

// UpdateOrderStatus handles PUT /api/order/{id}.
func (s *Server) UpdateOrderStatus(ctx echo.Context, id servers.ID) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var body servers.UpdateOrderStatusJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(orderID, status, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.handlers.TransitionOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	if s.recorder != nil {
		s.recorder.OrderTransitioned(updated.Status().String())
	}

	return ctx.JSON(http.StatusOK, orderResponse(updated))
}

// actor returns the principal of a protected route.
func (s *Server) actor(ctx echo.Context) (ports.Principal, error) {
	principal, ok := principalFrom(ctx)
	if !ok {
		return ports.Principal{}, errs.NewRejectedError(errs.ReasonMissingCredential)
	}
	return principal, nil
}

func menuItemResponse(item *menu.Item) servers.MenuItem {
	return servers.MenuItem{
		Id:    item.ID().Bytes(),
		Name:  item.Name(),
		Price: item.Price().Float64(),
	}
}

func orderResponse(o *order.Order) servers.Order {
	items := o.Items()
	lines := make([]servers.OrderLine, len(items))
	for i, item := range items {
		lines[i] = servers.OrderLine{
			Name:     item.Name(),
			Price:    item.UnitPrice().Float64(),
			Quantity: item.Quantity(),
		}
	}

	return servers.Order{
		Id:            o.ID().Bytes(),
		Token:         o.Token().String(),
		Email:         o.Customer().String(),
		Items:         lines,
		Total:         o.Total().Float64(),
		PaymentMethod: o.PaymentMethod(),
		Status:        servers.OrderStatus(o.Status().String()),
		CreatedAt:     o.CreatedAt(),
	}
}

func orderViewsResponse(views []queries.OrderView) []servers.Order {
	response := make([]servers.Order, len(views))
	for i, view := range views {
		lines := make([]servers.OrderLine, len(view.Items))
		for j, item := range view.Items {
			lines[j] = servers.OrderLine{
				Name:     item.Name,
				Price:    item.UnitPrice.Float64(),
				Quantity: item.Quantity,
			}
		}

		response[i] = servers.Order{
			Id:            view.ID.Bytes(),
			Token:         view.Token,
			Email:         view.CustomerEmail,
			Items:         lines,
			Total:         view.Total.Float64(),
			PaymentMethod: view.PaymentMethod,
			Status:        servers.OrderStatus(view.Status.String()),
			CreatedAt:     view.CreatedAt,
		}
	}
	return response
}
