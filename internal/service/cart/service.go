package cart

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

type cartRepo interface {
	AddLine(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	RemoveLine(ctx context.Context, userID, productID string) (*domain.Cart, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type Service struct {
	repo     cartRepo
	products productRepo
}

func New(repo cartRepo, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

// Add puts quantity units of a product into the user's cart, merging into an
// existing line. The stock check here is advisory; checkout re-validates
// against live stock atomically.
func (s *Service) Add(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if productID == "" || quantity <= 0 {
		return nil, domain.Invalid("Product and quantity required")
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Stock < quantity {
		return nil, domain.Invalid("Insufficient stock")
	}

	return s.repo.AddLine(ctx, userID, productID, quantity)
}

// Get returns the user's cart; a user with no cart yet sees an empty one.
func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.Cart{UserID: userID, Lines: []domain.CartLine{}}, nil
		}
		return nil, err
	}
	return cart, nil
}

func (s *Service) Remove(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	if productID == "" {
		return nil, domain.Invalid("Product required")
	}
	return s.repo.RemoveLine(ctx, userID, productID)
}
