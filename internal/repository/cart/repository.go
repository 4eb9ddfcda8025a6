package cart

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// AddLine lazily creates the user's cart and adds the product, merging
	// into an existing line by incrementing its quantity.
	AddLine(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	// GetByUser returns the cart with live product name/price/images joined
	// onto each line. ErrNotFound when the user has no cart yet.
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	RemoveLine(ctx context.Context, userID, productID string) (*domain.Cart, error)
}
