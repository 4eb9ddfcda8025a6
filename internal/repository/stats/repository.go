package stats

import (
	"context"

	"storefront/internal/domain"
)

// Summary holds the dashboard headline counters. Cancelled orders are
// excluded from the order count and revenue.
type Summary struct {
	TotalUsers        int64 `json:"totalUsers"`
	TotalProducts     int64 `json:"totalProducts"`
	TotalOrders       int64 `json:"totalOrders"`
	TotalRevenueCents int64 `json:"totalRevenueCents"`
}

// TopProduct is a catalog entry ranked by cumulative ordered quantity.
type TopProduct struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	PriceCents int64    `json:"priceCents"`
	Stock      int      `json:"stock"`
	ImageURLs  []string `json:"images"`
	UnitsSold  int64    `json:"unitsSold"`
}

type Repository interface {
	Summary(ctx context.Context) (*Summary, error)
	RecentOrders(ctx context.Context, limit int) ([]domain.Order, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
}
