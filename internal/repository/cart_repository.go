package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shop-service/internal/domain"
)

// CartRepository encapsulates cart persistence.
type CartRepository interface {
	AddItem(ctx context.Context, item *domain.CartItem) error
	ListByUser(ctx context.Context, userID int64) ([]domain.CartLine, error)
	RemoveItem(ctx context.Context, userID, productID int64) error
}

type cartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository instantiates the repository.
func NewCartRepository(pool *pgxpool.Pool) CartRepository {
	return &cartRepository{pool: pool}
}

// AddItem upserts on (user_id, product_id): re-adding a product accumulates
// its quantity instead of duplicating the row.
func (r *cartRepository) AddItem(ctx context.Context, item *domain.CartItem) error {
	const query = `
        INSERT INTO cart_items (user_id, product_id, quantity)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, product_id)
        DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
        RETURNING quantity`
	return r.pool.QueryRow(ctx, query,
		item.UserID,
		item.ProductID,
		item.Quantity,
	).Scan(&item.Quantity)
}

func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	const query = `
        SELECT ci.user_id, ci.product_id, ci.quantity, p.name, p.price, p.description
        FROM cart_items ci
        JOIN products p ON ci.product_id = p.id
        WHERE ci.user_id = $1
        ORDER BY ci.product_id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]domain.CartLine, 0)
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(
			&line.UserID,
			&line.ProductID,
			&line.Quantity,
			&line.ProductName,
			&line.Price,
			&line.Description,
		); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *cartRepository) RemoveItem(ctx context.Context, userID, productID int64) error {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id=$1 AND product_id=$2`, userID, productID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
