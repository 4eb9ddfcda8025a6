package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, name, COALESCE(description, ''), price_cents, COALESCE(category, ''), stock, is_deleted, created_at, updated_at`

func (r *postgresRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + productColumns + ` FROM products WHERE NOT is_deleted`)

	var args []interface{}
	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		args = append(args, "%"+kw+"%")
		fmt.Fprintf(&sb, ` AND (name ILIKE $%d OR description ILIKE $%d)`, len(args), len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		fmt.Fprintf(&sb, ` AND category = $%d`, len(args))
	}
	if filter.MinPriceCents != nil {
		args = append(args, *filter.MinPriceCents)
		fmt.Fprintf(&sb, ` AND price_cents >= $%d`, len(args))
	}
	if filter.MaxPriceCents != nil {
		args = append(args, *filter.MaxPriceCents)
		fmt.Fprintf(&sb, ` AND price_cents <= $%d`, len(args))
	}

	switch filter.Sort {
	case domain.SortPriceLow:
		sb.WriteString(` ORDER BY price_cents ASC`)
	case domain.SortPriceHigh:
		sb.WriteString(` ORDER BY price_cents DESC`)
	default:
		sb.WriteString(` ORDER BY created_at DESC`)
	}

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachImages(ctx, result); err != nil {
		return nil, err
	}
	r.logger.Printf("product repo: list count=%d", len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1 AND NOT is_deleted
`
	var p domain.Product
	if err := scanProduct(r.pool.QueryRow(ctx, q, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	products := []domain.Product{p}
	if err := r.attachImages(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (r *postgresRepo) Create(ctx context.Context, product domain.Product) (*domain.Product, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO products (name, description, price_cents, category, stock)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, created_at, updated_at
`
	var created domain.Product
	err = tx.QueryRow(ctx, q,
		product.Name, product.Description, product.PriceCents, product.Category, product.Stock,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		r.logger.Printf("product repo: create name=%s error=%v", product.Name, err)
		return nil, err
	}

	if err := insertImages(ctx, tx, created.ID, product.Images); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	created.Name = product.Name
	created.Description = product.Description
	created.PriceCents = product.PriceCents
	created.Category = product.Category
	created.Stock = product.Stock
	created.Images = product.Images
	r.logger.Printf("product repo: created id=%s name=%s", created.ID, created.Name)
	return &created, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
UPDATE products
SET name = COALESCE($2, name),
    description = COALESCE($3, description),
    price_cents = COALESCE($4, price_cents),
    category = COALESCE($5, category),
    stock = COALESCE($6, stock),
    updated_at = now()
WHERE id = $1 AND NOT is_deleted
RETURNING ` + productColumns
	var p domain.Product
	err = scanProduct(tx.QueryRow(ctx, q, id, in.Name, in.Description, in.PriceCents, in.Category, in.Stock), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%s error=%v", id, err)
		return nil, err
	}

	if in.Images != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM product_images WHERE product_id = $1`, id); err != nil {
			return nil, err
		}
		if err := insertImages(ctx, tx, id, in.Images); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if in.Images != nil {
		p.Images = in.Images
		return &p, nil
	}
	products := []domain.Product{p}
	if err := r.attachImages(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (r *postgresRepo) SoftDelete(ctx context.Context, id string) error {
	const q = `
UPDATE products
SET is_deleted = TRUE, updated_at = now()
WHERE id = $1 AND NOT is_deleted
`
	cmd, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		r.logger.Printf("product repo: soft delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("product repo: soft deleted id=%s", id)
	return nil
}

// attachImages loads image rows for the given products and fills Images in
// position order. Products without images get an empty slice, not nil.
func (r *postgresRepo) attachImages(ctx context.Context, products []domain.Product) error {
	for i := range products {
		products[i].Images = []domain.ProductImage{}
	}
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, 0, len(products))
	index := make(map[string]int, len(products))
	for i, p := range products {
		ids = append(ids, p.ID)
		index[p.ID] = i
	}

	const q = `
SELECT product_id::text, url, public_id
FROM product_images
WHERE product_id = ANY($1)
ORDER BY product_id, position
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var productID string
		var img domain.ProductImage
		if err := rows.Scan(&productID, &img.URL, &img.PublicID); err != nil {
			return err
		}
		if i, ok := index[productID]; ok {
			products[i].Images = append(products[i].Images, img)
		}
	}
	return rows.Err()
}

func insertImages(ctx context.Context, tx pgx.Tx, productID string, images []domain.ProductImage) error {
	for pos, img := range images {
		if _, err := tx.Exec(ctx, `
INSERT INTO product_images (product_id, url, public_id, position)
VALUES ($1, $2, $3, $4)
`, productID, img.URL, img.PublicID, pos); err != nil {
			return err
		}
	}
	return nil
}

func scanProduct(row pgx.Row, p *domain.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Category, &p.Stock, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt)
}
