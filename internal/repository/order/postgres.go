package order

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

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

func (r *postgresRepo) PlaceFromCart(ctx context.Context, in PlaceInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var cartID string
	err = tx.QueryRow(ctx, `SELECT id::text FROM carts WHERE user_id = $1`, in.UserID).Scan(&cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.Invalid("Cart is empty")
		}
		return nil, err
	}

	// Lines are walked in product_id order so every checkout locks product
	// rows in the same global order. Two carts holding the same products can
	// never deadlock on each other.
	rows, err := tx.Query(ctx, `
SELECT product_id::text, quantity
FROM cart_lines
WHERE cart_id = $1
ORDER BY product_id
`, cartID)
	if err != nil {
		return nil, err
	}
	type pending struct {
		productID string
		quantity  int
	}
	var cartLines []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.productID, &p.quantity); err != nil {
			rows.Close()
			return nil, err
		}
		cartLines = append(cartLines, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cartLines) == 0 {
		return nil, domain.Invalid("Cart is empty")
	}

	// Validate-and-reserve in one statement per product: the decrement only
	// fires when stock suffices, and RETURNING hands back the price in
	// effect at that instant. Concurrent checkouts serialize on the row,
	// so stock can never go negative.
	var total int64
	lines := make([]domain.OrderLine, 0, len(cartLines))
	for _, cl := range cartLines {
		var name string
		var priceCents int64
		err := tx.QueryRow(ctx, `
UPDATE products
SET stock = stock - $2, updated_at = now()
WHERE id = $1 AND NOT is_deleted AND stock >= $2
RETURNING name, price_cents
`, cl.productID, cl.quantity).Scan(&name, &priceCents)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, r.stockFailure(ctx, tx, cl.productID)
			}
			return nil, err
		}
		total += priceCents * int64(cl.quantity)
		lines = append(lines, domain.OrderLine{
			ProductID:      cl.productID,
			Quantity:       cl.quantity,
			UnitPriceCents: priceCents,
			ProductName:    name,
		})
	}

	order := domain.Order{
		UserID:       in.UserID,
		TotalCents:   total,
		Address:      in.Address,
		Status:       domain.OrderPending,
		DeliveryDate: in.DeliveryDate,
	}
	err = tx.QueryRow(ctx, `
INSERT INTO orders (user_id, total_cents, address, status, delivery_date)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, created_at
`, order.UserID, order.TotalCents, order.Address, order.Status, order.DeliveryDate).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	for i := range lines {
		lines[i].OrderID = order.ID
		err := tx.QueryRow(ctx, `
INSERT INTO order_lines (order_id, product_id, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4)
RETURNING id::text
`, order.ID, lines[i].ProductID, lines[i].Quantity, lines[i].UnitPriceCents).Scan(&lines[i].ID)
		if err != nil {
			return nil, err
		}
	}
	order.Lines = lines

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE cart_id = $1`, cartID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: placed id=%s user=%s total_cents=%d lines=%d", order.ID, order.UserID, order.TotalCents, len(order.Lines))
	return &order, nil
}

// stockFailure turns a failed conditional decrement into the right caller
// error: insufficient stock when the product still exists, not-found when it
// was removed between cart add and checkout.
func (r *postgresRepo) stockFailure(ctx context.Context, tx pgx.Tx, productID string) error {
	var name string
	err := tx.QueryRow(ctx, `
SELECT name FROM products WHERE id = $1 AND NOT is_deleted
`, productID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return domain.InsufficientStock(name)
}

func (r *postgresRepo) Cancel(ctx context.Context, orderID, ownerID string) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var userID, status string
	var deliveryDate time.Time
	err = tx.QueryRow(ctx, `
SELECT user_id::text, status, delivery_date
FROM orders
WHERE id = $1
FOR UPDATE
`, orderID).Scan(&userID, &status, &deliveryDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if ownerID != "" && userID != ownerID {
		return nil, domain.ErrNotFound
	}
	if status == domain.OrderCancelled {
		return nil, domain.Invalid("Order is already cancelled")
	}
	if status == domain.OrderDelivered {
		return nil, domain.Invalid("Delivered Order cannot be cancelled")
	}
	if ownerID != "" && deliveryDate.Before(time.Now()) {
		return nil, domain.Invalid("Delivered Order cannot be cancelled")
	}

	if err := cancelLocked(ctx, tx, orderID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: cancelled id=%s", orderID)
	return r.GetByID(ctx, orderID)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var current string
	err = tx.QueryRow(ctx, `
SELECT status
FROM orders
WHERE id = $1
FOR UPDATE
`, orderID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	switch {
	case current == domain.OrderCancelled:
		return nil, domain.Invalid("Cannot update a cancelled order")
	case current == domain.OrderDelivered:
		return nil, domain.Invalid("Cannot update a delivered order")
	case current == status:
		return nil, domain.Invalid("Order is already %s", status)
	}

	switch status {
	case domain.OrderCancelled:
		if err := cancelLocked(ctx, tx, orderID); err != nil {
			return nil, err
		}
	case domain.OrderDelivered:
		if _, err := tx.Exec(ctx, `
UPDATE orders SET status = $2, delivery_date = now() WHERE id = $1
`, orderID, status); err != nil {
			return nil, err
		}
	default:
		if _, err := tx.Exec(ctx, `
UPDATE orders SET status = $2 WHERE id = $1
`, orderID, status); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: status id=%s -> %s", orderID, status)
	return r.GetByID(ctx, orderID)
}

// cancelLocked marks the order cancelled and restores stock for every line
// in a single statement each. Callers must hold the order row lock so the
// restore cannot run twice.
func cancelLocked(ctx context.Context, tx pgx.Tx, orderID string) error {
	if _, err := tx.Exec(ctx, `
UPDATE orders SET status = 'cancelled' WHERE id = $1
`, orderID); err != nil {
		return err
	}
	_, err := tx.Exec(ctx, `
UPDATE products p
SET stock = p.stock + l.quantity, updated_at = now()
FROM order_lines l
WHERE l.order_id = $1 AND p.id = l.product_id
`, orderID)
	return err
}

const orderColumns = `o.id::text, o.user_id::text, o.total_cents, o.address, o.status, o.delivery_date, o.created_at`

func (r *postgresRepo) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders o
WHERE o.id = $1
`
	var o domain.Order
	err := r.pool.QueryRow(ctx, q, orderID).Scan(
		&o.ID, &o.UserID, &o.TotalCents, &o.Address, &o.Status, &o.DeliveryDate, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	orders := []domain.Order{o}
	if err := r.attachLines(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders o
WHERE o.user_id = $1
ORDER BY o.created_at DESC
`
	return r.list(ctx, q, userID)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `, u.name, u.email
FROM orders o
JOIN users u ON u.id = o.user_id
ORDER BY o.created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
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
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) UserExpenses(ctx context.Context, userID string) (int64, error) {
	const q = `
SELECT COALESCE(SUM(total_cents), 0)
FROM orders
WHERE user_id = $1 AND status <> 'cancelled'
`
	var total int64
	if err := r.pool.QueryRow(ctx, q, userID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.TotalCents, &o.Address, &o.Status, &o.DeliveryDate, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// attachLines loads order lines with the product name and images joined in.
// The snapshot price comes from the line itself, never the live product.
func (r *postgresRepo) attachLines(ctx context.Context, orders []domain.Order) error {
	for i := range orders {
		orders[i].Lines = []domain.OrderLine{}
	}
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, 0, len(orders))
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		ids = append(ids, o.ID)
		index[o.ID] = i
	}

	const q = `
SELECT ol.id::text, ol.order_id::text, ol.product_id::text, ol.quantity, ol.unit_price_cents,
       p.name,
       COALESCE(array_agg(pi.url ORDER BY pi.position) FILTER (WHERE pi.url IS NOT NULL), '{}')
FROM order_lines ol
JOIN products p ON p.id = ol.product_id
LEFT JOIN product_images pi ON pi.product_id = p.id
WHERE ol.order_id = ANY($1)
GROUP BY ol.id, ol.order_id, ol.product_id, ol.quantity, ol.unit_price_cents, p.name
ORDER BY ol.id
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(
			&line.ID, &line.OrderID, &line.ProductID, &line.Quantity, &line.UnitPriceCents,
			&line.ProductName, &line.ImageURLs,
		); err != nil {
			return err
		}
		if i, ok := index[line.OrderID]; ok {
			orders[i].Lines = append(orders[i].Lines, line)
		}
	}
	return rows.Err()
}
