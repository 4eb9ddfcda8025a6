package order

import (
	"context"
	"time"

	"storefront/internal/domain"
)

// PlaceInput carries everything checkout needs besides the cart itself,
// which is read inside the placement transaction.
type PlaceInput struct {
	UserID       string
	Address      string
	DeliveryDate time.Time
}

type Repository interface {
	// PlaceFromCart runs the whole checkout as one transaction: conditional
	// per-product stock decrements, order + line inserts with the price read
	// at decrement time, and clearing the cart. Any failure rolls back the
	// lot, leaving cart and stock untouched.
	PlaceFromCart(ctx context.Context, in PlaceInput) (*domain.Order, error)
	// Cancel transitions the order to cancelled and restores every line's
	// stock, exactly once. A non-empty ownerID restricts the cancel to that
	// owner and enforces the delivery-date window.
	Cancel(ctx context.Context, orderID, ownerID string) (*domain.Order, error)
	// UpdateStatus is the admin transition path. Transitions to delivered
	// fix the delivery date; transitions to cancelled restore stock.
	UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error)
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	// UserExpenses sums totals over the user's non-cancelled orders.
	UserExpenses(ctx context.Context, userID string) (int64, error)
}
