package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/replenix/replenix/internal/actorcontext"
	authdomain "github.com/replenix/replenix/internal/auth/domain"
	"github.com/replenix/replenix/internal/auth/session"
	"github.com/replenix/replenix/internal/config"
	orderdomain "github.com/replenix/replenix/internal/order/domain"
	productdomain "github.com/replenix/replenix/internal/product/domain"
	supplierdomain "github.com/replenix/replenix/internal/supplier/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	registerCalls int
	actor         *actorcontext.Actor
}

func (f *fakeAuthService) Register(ctx context.Context, req authdomain.RegisterRequest) (*authdomain.RegisterResult, error) {
	f.registerCalls++
	if req.Username == "taken" {
		return nil, authdomain.ErrUserExists
	}
	return &authdomain.RegisterResult{
		UserID:   snowflake.ID(200),
		Username: req.Username,
		Role:     actorcontext.RoleChief,
	}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	if req.Password != "secret1" {
		return nil, authdomain.ErrInvalidCredentials
	}
	return &authdomain.LoginResult{
		Actor:     actorcontext.Actor{UserID: snowflake.ID(200), Role: actorcontext.RoleChief},
		Username:  req.Username,
		RawToken:  "session-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, rawToken string) error {
	return nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, rawToken string) (*actorcontext.Actor, error) {
	if f.actor == nil || rawToken != "session-token" {
		return nil, authdomain.ErrInvalidSession
	}
	return f.actor, nil
}

type fakeOrderService struct {
	transitionErr error
}

func (f *fakeOrderService) Create(ctx context.Context, actor actorcontext.Actor, req orderdomain.CreateRequest) (*orderdomain.Response, error) {
	return &orderdomain.Response{ID: "1", Status: orderdomain.StatusPendingChiefApproval}, nil
}

func (f *fakeOrderService) List(ctx context.Context, actor actorcontext.Actor) ([]orderdomain.Response, error) {
	return nil, nil
}

func (f *fakeOrderService) ListPendingForSupplier(ctx context.Context, actor actorcontext.Actor) ([]orderdomain.Response, error) {
	return nil, nil
}

func (f *fakeOrderService) Approve(ctx context.Context, actor actorcontext.Actor, id string) (*orderdomain.Response, error) {
	if f.transitionErr != nil {
		return nil, f.transitionErr
	}
	return &orderdomain.Response{ID: id, Status: orderdomain.StatusPendingSupplierApproval}, nil
}

func (f *fakeOrderService) RejectByChief(ctx context.Context, actor actorcontext.Actor, id string) (*orderdomain.Response, error) {
	return &orderdomain.Response{ID: id, Status: orderdomain.StatusRejectedByChief}, nil
}

func (f *fakeOrderService) Confirm(ctx context.Context, actor actorcontext.Actor, id string) (*orderdomain.Response, error) {
	return &orderdomain.Response{ID: id, Status: orderdomain.StatusConfirmedBySupplier}, nil
}

func (f *fakeOrderService) RejectBySupplier(ctx context.Context, actor actorcontext.Actor, id string) (*orderdomain.Response, error) {
	return &orderdomain.Response{ID: id, Status: orderdomain.StatusRejectedBySupplier}, nil
}

type fakeProductService struct{}

func (f *fakeProductService) Create(ctx context.Context, actor actorcontext.Actor, req productdomain.CreateRequest) (*productdomain.Response, error) {
	return &productdomain.Response{ID: "1", Name: req.Name}, nil
}

func (f *fakeProductService) Update(ctx context.Context, actor actorcontext.Actor, id string, req productdomain.UpdateRequest) (*productdomain.Response, error) {
	return nil, productdomain.ErrNotFound
}

func (f *fakeProductService) Delete(ctx context.Context, actor actorcontext.Actor, id string) error {
	return productdomain.ErrOpenOrders
}

func (f *fakeProductService) List(ctx context.Context, actor actorcontext.Actor) ([]productdomain.Response, error) {
	return []productdomain.Response{}, nil
}

func (f *fakeProductService) ListBySupplier(ctx context.Context, actor actorcontext.Actor) ([]productdomain.Response, error) {
	return nil, nil
}

func (f *fakeProductService) Get(ctx context.Context, actor actorcontext.Actor, id string) (*productdomain.Response, error) {
	return nil, productdomain.ErrNotFound
}

type fakeSupplierService struct{}

func (f *fakeSupplierService) List(ctx context.Context) ([]supplierdomain.Response, error) {
	return []supplierdomain.Response{{ID: "1", Name: "Acme Metals"}}, nil
}

func (f *fakeSupplierService) Get(ctx context.Context, id string) (*supplierdomain.Response, error) {
	return nil, supplierdomain.ErrNotFound
}

func newTestServer(t *testing.T, auth *fakeAuthService, orders *fakeOrderService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ErrorHandlingMiddleware())

	cfg := config.Config{Environment: "test"}
	NewServer(ServerParams{
		Gin:         r,
		Cfg:         cfg,
		Authsvc:     auth,
		Sessions:    session.NewManager(cfg),
		ProductSvc:  &fakeProductService{},
		OrderSvc:    orders,
		SupplierSvc: &fakeSupplierService{},
	})
	return r
}

func doJSON(r *gin.Engine, method, path string, body any, cookie string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterHandler(t *testing.T) {
	auth := &fakeAuthService{}
	r := newTestServer(t, auth, &fakeOrderService{})

	w := doJSON(r, http.MethodPost, "/api/auth/register", gin.H{"username": "alice", "password": "secret1"}, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, auth.registerCalls)

	w = doJSON(r, http.MethodPost, "/api/auth/register", gin.H{"username": "taken", "password": "secret1"}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "conflict", resp.Error.Type)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	r := newTestServer(t, &fakeAuthService{}, &fakeOrderService{})

	w := doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"username": "alice", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, session.DefaultCookieName, cookies[0].Name)
	assert.Equal(t, "session-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	w = doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"username": "alice", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsMissingSession(t *testing.T) {
	r := newTestServer(t, &fakeAuthService{}, &fakeOrderService{})

	w := doJSON(r, http.MethodGet, "/api/products", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/api/products", nil, "bogus")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleGating(t *testing.T) {
	auth := &fakeAuthService{actor: &actorcontext.Actor{UserID: snowflake.ID(7), Role: actorcontext.RoleManager}}
	r := newTestServer(t, auth, &fakeOrderService{})

	// managers cannot decide approvals
	w := doJSON(r, http.MethodPut, "/api/orders/1/approve", nil, "session-token")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// nor reach the supplier surface
	w = doJSON(r, http.MethodGet, "/api/supplier/orders", nil, "session-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestInvalidTransitionMapsToConflict(t *testing.T) {
	auth := &fakeAuthService{actor: &actorcontext.Actor{UserID: snowflake.ID(7), Role: actorcontext.RoleChief}}
	orders := &fakeOrderService{transitionErr: orderdomain.ErrInvalidTransition}
	r := newTestServer(t, auth, orders)

	w := doJSON(r, http.MethodPut, "/api/orders/1/approve", nil, "session-token")
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_transition", resp.Error.Type)
}

func TestDeleteWithOpenOrdersMapsToConflict(t *testing.T) {
	auth := &fakeAuthService{actor: &actorcontext.Actor{UserID: snowflake.ID(7), Role: actorcontext.RoleSupplier, SupplierID: snowflake.ID(9)}}
	r := newTestServer(t, auth, &fakeOrderService{})

	w := doJSON(r, http.MethodDelete, "/api/products/1", nil, "session-token")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMalformedBodyIsValidationError(t *testing.T) {
	auth := &fakeAuthService{actor: &actorcontext.Actor{UserID: snowflake.ID(7), Role: actorcontext.RoleChief}}
	r := newTestServer(t, auth, &fakeOrderService{})

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "session-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
}
