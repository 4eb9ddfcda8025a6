package user

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	userrepo "storefront/internal/repository/user"
)

// ErrCannotDeleteAdmin guards admin accounts against deletion.
var ErrCannotDeleteAdmin = errors.New("Cannot delete admin user")

type Service struct {
	repo userrepo.Repository
}

func New(repo userrepo.Repository) *Service {
	return &Service{repo: repo}
}

// List returns non-deleted customer accounts with their order counts.
func (s *Service) List(ctx context.Context) ([]userrepo.UserWithOrders, error) {
	users, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []userrepo.UserWithOrders{}
	}
	return users, nil
}

func (s *Service) Get(ctx context.Context, id string) (*userrepo.UserWithOrders, error) {
	return s.repo.GetWithOrderCount(ctx, id)
}

type UpdateInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateProfile changes name and/or email; blank fields are left alone.
func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateInput) (*domain.User, error) {
	var repoIn userrepo.UpdateInput
	if name := strings.TrimSpace(in.Name); name != "" {
		repoIn.Name = &name
	}
	if email := strings.TrimSpace(strings.ToLower(in.Email)); email != "" {
		repoIn.Email = &email
	}
	if repoIn.Name == nil && repoIn.Email == nil {
		return nil, domain.Invalid("Nothing to update")
	}

	updated, err := s.repo.Update(ctx, id, repoIn)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.Invalid("Email already in use")
		}
		return nil, err
	}
	return updated, nil
}

// Delete soft-deletes a customer account. Admin accounts are protected.
func (s *Service) Delete(ctx context.Context, id string) error {
	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleAdmin {
		return ErrCannotDeleteAdmin
	}
	return s.repo.SoftDelete(ctx, id)
}
