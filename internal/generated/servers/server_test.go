package servers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cafeteria/internal/generated/servers"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingServer struct {
	servers.ServerInterface

	id     servers.ID
	email  string
	params servers.PlaceOrderParams
	scopes any
}

func (s *recordingServer) UpdateOrderStatus(ctx echo.Context, id servers.ID) error {
	s.id = id
	s.scopes = ctx.Get(servers.BearerAuthScopes)
	return ctx.NoContent(http.StatusOK)
}

func (s *recordingServer) GetOrderHistory(ctx echo.Context, email string) error {
	s.email = email
	return ctx.NoContent(http.StatusOK)
}

func (s *recordingServer) PlaceOrder(ctx echo.Context, params servers.PlaceOrderParams) error {
	s.params = params
	return ctx.NoContent(http.StatusCreated)
}

func serve(e *echo.Echo, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetSwagger(t *testing.T) {
	swagger, err := servers.GetSwagger()
	require.NoError(t, err)

	assert.Equal(t, "Cafeteria API", swagger.Info.Title)
	require.NotNil(t, swagger.Paths.Find("/api/order/{id}"))
	assert.NotNil(t, swagger.Paths.Find("/api/order/{id}").Put)
	assert.Contains(t, swagger.Components.SecuritySchemes, "bearerAuth")
}

func TestRegisterHandlers_BindsParameters(t *testing.T) {
	e := echo.New()
	si := &recordingServer{}
	servers.RegisterHandlers(e, si)

	id := uuid.New()
	rec := serve(e, http.MethodPut, "/api/order/"+id.String(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, si.id)
	assert.Equal(t, []string{"admin"}, si.scopes)

	rec = serve(e, http.MethodGet, "/api/order/user/b%40x.com", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "b@x.com", si.email)

	rec = serve(e, http.MethodPost, "/api/order", http.Header{"Idempotency-Key": {"k-1"}})
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, si.params.IdempotencyKey)
	assert.Equal(t, "k-1", *si.params.IdempotencyKey)
}

func TestRegisterHandlers_InvalidID(t *testing.T) {
	e := echo.New()
	servers.RegisterHandlers(e, &recordingServer{})

	rec := serve(e, http.MethodPut, "/api/order/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
