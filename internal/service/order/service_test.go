package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
)

type stubOrderRepo struct {
	order        *domain.Order
	orders       []domain.Order
	err          error
	expenses     int64
	lastPlace    orderrepo.PlaceInput
	lastOrderID  string
	lastOwnerID  string
	lastStatus   string
	updateCalled bool
}

func (s *stubOrderRepo) PlaceFromCart(_ context.Context, in orderrepo.PlaceInput) (*domain.Order, error) {
	s.lastPlace = in
	return s.order, s.err
}

func (s *stubOrderRepo) Cancel(_ context.Context, orderID, ownerID string) (*domain.Order, error) {
	s.lastOrderID = orderID
	s.lastOwnerID = ownerID
	return s.order, s.err
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, orderID, status string) (*domain.Order, error) {
	s.updateCalled = true
	s.lastOrderID = orderID
	s.lastStatus = status
	return s.order, s.err
}

func (s *stubOrderRepo) GetByID(_ context.Context, _ string) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderRepo) ListByUser(_ context.Context, _ string) ([]domain.Order, error) {
	return s.orders, s.err
}

func (s *stubOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	return s.orders, s.err
}

func (s *stubOrderRepo) UserExpenses(_ context.Context, _ string) (int64, error) {
	return s.expenses, s.err
}

func TestCheckoutRequiresAddress(t *testing.T) {
	svc := New(&stubOrderRepo{})
	_, err := svc.Checkout(context.Background(), "u1", "   ")
	if err == nil || err.Error() != "Address is required" {
		t.Fatalf("expected address error, got %v", err)
	}
}

func TestCheckoutPlacesOrder(t *testing.T) {
	repo := &stubOrderRepo{order: &domain.Order{ID: "o1"}}
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := &Service{repo: repo, now: func() time.Time { return fixed }}

	got, err := svc.Checkout(context.Background(), "u1", "  12 Main St  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "o1" {
		t.Fatalf("unexpected order %+v", got)
	}
	if repo.lastPlace.UserID != "u1" || repo.lastPlace.Address != "12 Main St" {
		t.Fatalf("unexpected place input %+v", repo.lastPlace)
	}
	if want := fixed.Add(deliveryLeadTime); !repo.lastPlace.DeliveryDate.Equal(want) {
		t.Fatalf("delivery date %v, want %v", repo.lastPlace.DeliveryDate, want)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	repo := &stubOrderRepo{err: domain.Invalid("Cart is empty")}
	svc := New(repo)
	_, err := svc.Checkout(context.Background(), "u1", "12 Main St")
	if err == nil || err.Error() != "Cart is empty" {
		t.Fatalf("expected empty cart error, got %v", err)
	}
}

func TestListMineNeverNil(t *testing.T) {
	svc := New(&stubOrderRepo{})
	orders, err := svc.ListMine(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orders == nil || len(orders) != 0 {
		t.Fatalf("expected empty slice, got %#v", orders)
	}
}

func TestCancelPassesOwner(t *testing.T) {
	repo := &stubOrderRepo{order: &domain.Order{ID: "o1", Status: domain.OrderCancelled}}
	svc := New(repo)
	got, err := svc.Cancel(context.Background(), "u1", "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.OrderCancelled {
		t.Fatalf("unexpected order %+v", got)
	}
	if repo.lastOrderID != "o1" || repo.lastOwnerID != "u1" {
		t.Fatalf("cancel called with %s/%s", repo.lastOrderID, repo.lastOwnerID)
	}
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := New(repo)
	_, err := svc.UpdateStatus(context.Background(), "o1", "teleported")
	if err == nil || err.Error() != "Invalid status" {
		t.Fatalf("expected invalid status, got %v", err)
	}
	if repo.updateCalled {
		t.Fatalf("repo should not be called for invalid status")
	}
}

func TestUpdateStatusNormalizesCase(t *testing.T) {
	repo := &stubOrderRepo{order: &domain.Order{ID: "o1", Status: domain.OrderShipped}}
	svc := New(repo)
	_, err := svc.UpdateStatus(context.Background(), "o1", "  Shipped ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastStatus != domain.OrderShipped {
		t.Fatalf("status not normalized: %q", repo.lastStatus)
	}
}

func TestUpdateStatusRepoErrorPassthrough(t *testing.T) {
	boom := errors.New("boom")
	svc := New(&stubOrderRepo{err: boom})
	_, err := svc.UpdateStatus(context.Background(), "o1", "shipped")
	if !errors.Is(err, boom) {
		t.Fatalf("expected repo error, got %v", err)
	}
}

func TestUserExpenses(t *testing.T) {
	svc := New(&stubOrderRepo{expenses: 12345})
	total, err := svc.UserExpenses(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 12345 {
		t.Fatalf("expected 12345, got %d", total)
	}
}
