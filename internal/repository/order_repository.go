package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shop-service/internal/domain"
)

// OrderRepository encapsulates order persistence.
type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *domain.Order, items []domain.OrderItem) error
	ListByUser(ctx context.Context, userID int64) ([]domain.OrderLine, error)
	ListAll(ctx context.Context) ([]domain.AdminOrder, error)
	GetStatus(ctx context.Context, orderID int64) (domain.OrderStatus, error)
	UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error
	Count(ctx context.Context) (int64, error)
}

// orderStore is the pool surface the repository depends on, satisfied by
// *pgxpool.Pool.
type orderStore interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type orderRepository struct {
	pool orderStore
}

// NewOrderRepository instantiates the repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

// CreateWithItems persists the order header and all its items in a single
// transaction. Any item failure rolls back the header, so an order can
// never exist without its items.
func (r *orderRepository) CreateWithItems(ctx context.Context, order *domain.Order, items []domain.OrderItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const headerQuery = `
        INSERT INTO orders (user_id, total_amount, shipping_address)
        VALUES ($1, $2, $3)
        RETURNING id, status, created_at`
	if err := tx.QueryRow(ctx, headerQuery,
		order.UserID,
		order.TotalAmount,
		order.ShippingAddress,
	).Scan(&order.ID, &order.Status, &order.CreatedAt); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	const itemQuery = `
        INSERT INTO order_items (order_id, product_id, quantity, price)
        VALUES ($1, $2, $3, $4)`
	for _, item := range items {
		batch.Queue(itemQuery, order.ID, item.ProductID, item.Quantity, item.Price)
	}

	results := tx.SendBatch(ctx, batch)
	for range items {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return err
		}
	}
	if err := results.Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.OrderLine, error) {
	const query = `
        SELECT o.id, o.user_id, o.total_amount, o.shipping_address, o.status, o.created_at,
               oi.product_id, p.name, oi.quantity, oi.price
        FROM orders o
        JOIN order_items oi ON o.id = oi.order_id
        JOIN products p ON oi.product_id = p.id
        WHERE o.user_id = $1
        ORDER BY o.created_at DESC, o.id, oi.id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]domain.OrderLine, 0)
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(
			&line.ID,
			&line.UserID,
			&line.TotalAmount,
			&line.ShippingAddress,
			&line.Status,
			&line.CreatedAt,
			&line.ProductID,
			&line.ProductName,
			&line.Quantity,
			&line.Price,
		); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *orderRepository) ListAll(ctx context.Context) ([]domain.AdminOrder, error) {
	const query = `
        SELECT o.id, o.user_id, o.total_amount, o.shipping_address, o.status, o.created_at,
               u.name, u.email
        FROM orders o
        JOIN users u ON o.user_id = u.id
        ORDER BY o.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.AdminOrder, 0)
	for rows.Next() {
		var order domain.AdminOrder
		if err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.TotalAmount,
			&order.ShippingAddress,
			&order.Status,
			&order.CreatedAt,
			&order.CustomerName,
			&order.CustomerEmail,
		); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepository) GetStatus(ctx context.Context, orderID int64) (domain.OrderStatus, error) {
	var status domain.OrderStatus
	err := r.pool.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, orderID).Scan(&status)
	return status, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET status=$1 WHERE id=$2`, status, orderID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}
