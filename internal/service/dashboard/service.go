package dashboard

import (
	"context"

	"storefront/internal/domain"
	statsrepo "storefront/internal/repository/stats"
)

const topN = 5

type statsRepo interface {
	Summary(ctx context.Context) (*statsrepo.Summary, error)
	RecentOrders(ctx context.Context, limit int) ([]domain.Order, error)
	TopProducts(ctx context.Context, limit int) ([]statsrepo.TopProduct, error)
}

type Service struct {
	repo statsRepo
}

func New(repo statsrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Data is the admin dashboard payload: headline counters, the five most
// recent non-cancelled orders, and the five best-selling products.
type Data struct {
	Summary      statsrepo.Summary      `json:"summary"`
	RecentOrders []domain.Order         `json:"recentOrders"`
	TopProducts  []statsrepo.TopProduct `json:"topProducts"`
}

func (s *Service) Fetch(ctx context.Context) (*Data, error) {
	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.RecentOrders(ctx, topN)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopProducts(ctx, topN)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []domain.Order{}
	}
	if top == nil {
		top = []statsrepo.TopProduct{}
	}
	return &Data{Summary: *summary, RecentOrders: recent, TopProducts: top}, nil
}
