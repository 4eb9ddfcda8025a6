package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"storefront/internal/domain"
	userrepo "storefront/internal/repository/user"
	authsvc "storefront/internal/service/auth"
	catalogsvc "storefront/internal/service/catalog"
	dashboardsvc "storefront/internal/service/dashboard"
	usersvc "storefront/internal/service/user"
)

var testTokens = authsvc.NewTokenManager("test-secret")

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// testRouter builds the full route table with stubbed services; nil deps are
// replaced with empty stubs so tests only fill in what they exercise.
func testRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if deps.AuthSvc == nil {
		deps.AuthSvc = &stubAuthSvc{}
	}
	if deps.CatalogSvc == nil {
		deps.CatalogSvc = &stubCatalogSvc{}
	}
	if deps.CartSvc == nil {
		deps.CartSvc = &stubCartSvc{}
	}
	if deps.OrderSvc == nil {
		deps.OrderSvc = &stubOrderSvc{}
	}
	if deps.UserSvc == nil {
		deps.UserSvc = &stubUserSvc{}
	}
	if deps.DashboardSvc == nil {
		deps.DashboardSvc = &stubDashboardSvc{}
	}
	if deps.Tokens == nil {
		deps.Tokens = testTokens
	}
	return buildRouter(logDiscard(), nil, deps, Options{})
}

func withAuth(t *testing.T, req *http.Request, userID, role string) {
	t.Helper()
	token, err := testTokens.Issue(userID, role)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	req.AddCookie(&http.Cookie{Name: authCookie, Value: token})
}

type stubAuthSvc struct {
	user      *domain.User
	token     string
	signupErr error
	loginErr  error
}

func (s *stubAuthSvc) Signup(_ context.Context, _ authsvc.SignupInput) (*domain.User, string, error) {
	return s.user, s.token, s.signupErr
}

func (s *stubAuthSvc) Login(_ context.Context, _, _ string) (*domain.User, string, error) {
	return s.user, s.token, s.loginErr
}

type stubCatalogSvc struct {
	products   []domain.Product
	product    *domain.Product
	err        error
	lastFilter domain.ProductFilter
	lastCreate catalogsvc.CreateInput
	lastUpdate catalogsvc.UpdateInput
}

func (s *stubCatalogSvc) List(_ context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	s.lastFilter = filter
	return s.products, s.err
}

func (s *stubCatalogSvc) Get(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubCatalogSvc) Create(_ context.Context, in catalogsvc.CreateInput) (*domain.Product, error) {
	s.lastCreate = in
	return s.product, s.err
}

func (s *stubCatalogSvc) Update(_ context.Context, _ string, in catalogsvc.UpdateInput) (*domain.Product, error) {
	s.lastUpdate = in
	return s.product, s.err
}

func (s *stubCatalogSvc) Delete(_ context.Context, _ string) error {
	return s.err
}

type stubCartSvc struct {
	cart *domain.Cart
	err  error
}

func (s *stubCartSvc) Add(_ context.Context, _, _ string, _ int) (*domain.Cart, error) {
	return s.cart, s.err
}

func (s *stubCartSvc) Get(_ context.Context, _ string) (*domain.Cart, error) {
	return s.cart, s.err
}

func (s *stubCartSvc) Remove(_ context.Context, _, _ string) (*domain.Cart, error) {
	return s.cart, s.err
}

type stubOrderSvc struct {
	order      *domain.Order
	orders     []domain.Order
	err        error
	expenses   int64
	lastUserID string
	lastOrder  string
	lastStatus string
}

func (s *stubOrderSvc) Checkout(_ context.Context, userID, _ string) (*domain.Order, error) {
	s.lastUserID = userID
	return s.order, s.err
}

func (s *stubOrderSvc) ListMine(_ context.Context, userID string) ([]domain.Order, error) {
	s.lastUserID = userID
	return s.orders, s.err
}

func (s *stubOrderSvc) Cancel(_ context.Context, userID, orderID string) (*domain.Order, error) {
	s.lastUserID = userID
	s.lastOrder = orderID
	return s.order, s.err
}

func (s *stubOrderSvc) ListAll(_ context.Context) ([]domain.Order, error) {
	return s.orders, s.err
}

func (s *stubOrderSvc) UpdateStatus(_ context.Context, orderID, status string) (*domain.Order, error) {
	s.lastOrder = orderID
	s.lastStatus = status
	return s.order, s.err
}

func (s *stubOrderSvc) UserExpenses(_ context.Context, userID string) (int64, error) {
	s.lastUserID = userID
	return s.expenses, s.err
}

type stubUserSvc struct {
	users     []userrepo.UserWithOrders
	user      *userrepo.UserWithOrders
	updated   *domain.User
	err       error
	deleteErr error
	lastID    string
}

func (s *stubUserSvc) List(_ context.Context) ([]userrepo.UserWithOrders, error) {
	return s.users, s.err
}

func (s *stubUserSvc) Get(_ context.Context, id string) (*userrepo.UserWithOrders, error) {
	s.lastID = id
	return s.user, s.err
}

func (s *stubUserSvc) UpdateProfile(_ context.Context, id string, _ usersvc.UpdateInput) (*domain.User, error) {
	s.lastID = id
	return s.updated, s.err
}

func (s *stubUserSvc) Delete(_ context.Context, id string) error {
	s.lastID = id
	return s.deleteErr
}

type stubDashboardSvc struct {
	data *dashboardsvc.Data
	err  error
}

func (s *stubDashboardSvc) Fetch(_ context.Context) (*dashboardsvc.Data, error) {
	return s.data, s.err
}

func TestAuthRequired_NoCookie(t *testing.T) {
	router := testRouter(Deps{})

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAuthRequired_BadToken(t *testing.T) {
	router := testRouter(Deps{})

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: authCookie, Value: "garbage"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAdminRequired_RejectsCustomer(t *testing.T) {
	router := testRouter(Deps{})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	withAuth(t, req, "u1", domain.RoleUser)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCustomerOnly_RejectsAdmin(t *testing.T) {
	router := testRouter(Deps{})

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	withAuth(t, req, "a1", domain.RoleAdmin)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	router := testRouter(Deps{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
