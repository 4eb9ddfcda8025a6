package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Name        string
	Description string
	PriceCents  int64
	Category    string
	Stock       int
	ImageURL    string
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin12345"
	}
	if err := ensureAdmin(ctx, pool, "admin@storefront.local", adminPassword); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	products := []productSeed{
		{
			Name:        "Demo T-Shirt",
			Description: "Soft cotton tee for demo purposes",
			PriceCents:  1999,
			Category:    "apparel",
			Stock:       50,
			ImageURL:    "https://images.storefront.local/demo-shirt.jpg",
		},
		{
			Name:        "Demo Mug",
			Description: "Ceramic mug with demo logo",
			PriceCents:  1299,
			Category:    "kitchen",
			Stock:       80,
			ImageURL:    "https://images.storefront.local/demo-mug.jpg",
		},
		{
			Name:        "Demo Sneakers",
			Description: "Lightweight everyday sneakers",
			PriceCents:  5499,
			Category:    "footwear",
			Stock:       25,
			ImageURL:    "https://images.storefront.local/demo-sneakers.jpg",
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	return nil
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
INSERT INTO users (name, email, password_hash, role)
VALUES ('Admin', $1, $2, 'admin')
ON CONFLICT (email) DO NOTHING
`, email, string(hashed))
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	var id string
	var inserted bool
	err := pool.QueryRow(ctx, `
WITH existing AS (
    SELECT id FROM products WHERE name = $1
), created AS (
    INSERT INTO products (name, description, price_cents, category, stock)
    SELECT $1, $2, $3, $4, $5
    WHERE NOT EXISTS (SELECT 1 FROM existing)
    RETURNING id
)
SELECT id::text, TRUE FROM created
UNION ALL
SELECT id::text, FALSE FROM existing
LIMIT 1
`, p.Name, p.Description, p.PriceCents, p.Category, p.Stock).Scan(&id, &inserted)
	if err != nil {
		return err
	}
	if !inserted {
		return nil
	}

	_, err = pool.Exec(ctx, `
INSERT INTO product_images (product_id, url, public_id, position)
VALUES ($1, $2, $3, 0)
`, id, p.ImageURL, uuid.NewString())
	return err
}
