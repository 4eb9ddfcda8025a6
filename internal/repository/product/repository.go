package product

import (
	"context"

	"storefront/internal/domain"
)

// UpdateInput holds optional product fields; nil means "leave unchanged".
// Images replaces the whole image list when non-nil.
type UpdateInput struct {
	Name        *string
	Description *string
	PriceCents  *int64
	Category    *string
	Stock       *int
	Images      []domain.ProductImage
}

type Repository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error)
	SoftDelete(ctx context.Context, id string) error
}
