package stats

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Summary(ctx context.Context) (*Summary, error) {
	const q = `
SELECT
    (SELECT COUNT(*) FROM users WHERE NOT is_deleted),
    (SELECT COUNT(*) FROM products WHERE NOT is_deleted),
    (SELECT COUNT(*) FROM orders WHERE status <> 'cancelled'),
    (SELECT COALESCE(SUM(total_cents), 0) FROM orders WHERE status <> 'cancelled')
`
	var s Summary
	if err := r.pool.QueryRow(ctx, q).Scan(&s.TotalUsers, &s.TotalProducts, &s.TotalOrders, &s.TotalRevenueCents); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) RecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	const q = `
SELECT o.id::text, o.user_id::text, o.total_cents, o.address, o.status, o.delivery_date, o.created_at,
       u.name, u.email
FROM orders o
JOIN users u ON u.id = o.user_id
WHERE o.status <> 'cancelled'
ORDER BY o.created_at DESC
LIMIT $1
`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.TotalCents, &o.Address, &o.Status, &o.DeliveryDate, &o.CreatedAt,
			&o.UserName, &o.UserEmail,
		); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func (r *postgresRepo) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	const q = `
SELECT p.id::text, p.name, p.price_cents, p.stock,
       COALESCE((SELECT array_agg(pi.url ORDER BY pi.position) FROM product_images pi WHERE pi.product_id = p.id), '{}'),
       SUM(ol.quantity) AS units
FROM order_lines ol
JOIN products p ON p.id = ol.product_id
GROUP BY p.id, p.name, p.price_cents, p.stock
ORDER BY units DESC
LIMIT $1
`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []TopProduct{}
	for rows.Next() {
		var t TopProduct
		if err := rows.Scan(&t.ID, &t.Name, &t.PriceCents, &t.Stock, &t.ImageURLs, &t.UnitsSold); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}
