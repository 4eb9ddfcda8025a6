package order

import (
	"context"
	"strings"
	"time"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
)

// deliveryLeadTime is the estimated delivery window added at checkout.
const deliveryLeadTime = 5 * 24 * time.Hour

type orderRepo interface {
	PlaceFromCart(ctx context.Context, in orderrepo.PlaceInput) (*domain.Order, error)
	Cancel(ctx context.Context, orderID, ownerID string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UserExpenses(ctx context.Context, userID string) (int64, error)
}

type Service struct {
	repo orderRepo
	now  func() time.Time
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Checkout places an order from the user's cart. Validation, stock
// reservation, order creation and cart clearing all happen inside one
// storage transaction; see the repository.
func (s *Service) Checkout(ctx context.Context, userID, address string) (*domain.Order, error) {
	if strings.TrimSpace(address) == "" {
		return nil, domain.Invalid("Address is required")
	}
	return s.repo.PlaceFromCart(ctx, orderrepo.PlaceInput{
		UserID:       userID,
		Address:      strings.TrimSpace(address),
		DeliveryDate: s.now().Add(deliveryLeadTime),
	})
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// Cancel is the user-facing path: only the owner may cancel, and only while
// the order is pending/shipped and the delivery date has not passed.
func (s *Service) Cancel(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	return s.repo.Cancel(ctx, orderID, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// UpdateStatus is the admin path. It accepts any valid target status; the
// repository enforces the lifecycle rules.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !domain.ValidOrderStatus(status) {
		return nil, domain.Invalid("Invalid status")
	}
	return s.repo.UpdateStatus(ctx, orderID, status)
}

func (s *Service) UserExpenses(ctx context.Context, userID string) (int64, error) {
	return s.repo.UserExpenses(ctx, userID)
}
