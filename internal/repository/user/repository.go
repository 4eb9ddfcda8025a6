package user

import (
	"context"

	"storefront/internal/domain"
)

// UserWithOrders carries a user plus the number of orders they have placed.
type UserWithOrders struct {
	domain.User
	TotalOrders int `json:"totalOrders"`
}

// UpdateInput holds optional profile fields; nil means "leave unchanged".
type UpdateInput struct {
	Name  *string
	Email *string
}

type Repository interface {
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetWithOrderCount(ctx context.Context, id string) (*UserWithOrders, error)
	ListCustomers(ctx context.Context) ([]UserWithOrders, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.User, error)
	SoftDelete(ctx context.Context, id string) error
}
