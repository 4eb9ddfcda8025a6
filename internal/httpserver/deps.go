package httpserver

import (
	"context"

	"storefront/internal/domain"
	userrepo "storefront/internal/repository/user"
	authsvc "storefront/internal/service/auth"
	catalogsvc "storefront/internal/service/catalog"
	dashboardsvc "storefront/internal/service/dashboard"
	usersvc "storefront/internal/service/user"
)

// Service interfaces consumed by the handlers. Kept here so handler tests
// can stub them without touching the real services.

type AuthService interface {
	Signup(ctx context.Context, in authsvc.SignupInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type CatalogService interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in catalogsvc.CreateInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in catalogsvc.UpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type CartService interface {
	Add(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Remove(ctx context.Context, userID, productID string) (*domain.Cart, error)
}

type OrderService interface {
	Checkout(ctx context.Context, userID, address string) (*domain.Order, error)
	ListMine(ctx context.Context, userID string) ([]domain.Order, error)
	Cancel(ctx context.Context, userID, orderID string) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error)
	UserExpenses(ctx context.Context, userID string) (int64, error)
}

type UserService interface {
	List(ctx context.Context) ([]userrepo.UserWithOrders, error)
	Get(ctx context.Context, id string) (*userrepo.UserWithOrders, error)
	UpdateProfile(ctx context.Context, id string, in usersvc.UpdateInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type DashboardService interface {
	Fetch(ctx context.Context) (*dashboardsvc.Data, error)
}

// Deps bundles everything buildRouter needs.
type Deps struct {
	AuthSvc      AuthService
	CatalogSvc   CatalogService
	CartSvc      CartService
	OrderSvc     OrderService
	UserSvc      UserService
	DashboardSvc DashboardService
	Tokens       *authsvc.TokenManager
}
