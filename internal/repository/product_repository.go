package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shop-service/internal/domain"
)

// ProductRepository encapsulates catalog persistence for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error)
	Search(ctx context.Context, term string) ([]domain.Product, error)
	UpdateStock(ctx context.Context, id int64, stock int32) error
	ListWithCategory(ctx context.Context) ([]domain.ProductWithCategory, error)
	CountLowStock(ctx context.Context, threshold int32) (int64, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository instantiates the repository.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = `id, name, price, description, stock, category_id`

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (name, price, description, stock, category_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		product.Name,
		product.Price,
		product.Description,
		product.Stock,
		product.CategoryID,
	).Scan(&product.ID)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products SET name=$1, price=$2, description=$3, stock=$4, category_id=$5
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		product.Name,
		product.Price,
		product.Description,
		product.Stock,
		product.CategoryID,
		product.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`

	var product domain.Product
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Description,
		&product.Stock,
		&product.CategoryID,
	); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products ORDER BY id`
	return r.fetchMany(ctx, query)
}

func (r *productRepository) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE category_id=$1 ORDER BY id`
	return r.fetchMany(ctx, query, categoryID)
}

func (r *productRepository) Search(ctx context.Context, term string) ([]domain.Product, error) {
	const query = `
        SELECT ` + productColumns + ` FROM products
        WHERE name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
        ORDER BY id`
	return r.fetchMany(ctx, query, term)
}

func (r *productRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
			&product.Description,
			&product.Stock,
			&product.CategoryID,
		); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepository) UpdateStock(ctx context.Context, id int64, stock int32) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE products SET stock=$1 WHERE id=$2`, stock, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) ListWithCategory(ctx context.Context) ([]domain.ProductWithCategory, error) {
	const query = `
        SELECT p.id, p.name, p.price, p.description, p.stock, p.category_id, c.name
        FROM products p
        LEFT JOIN categories c ON p.category_id = c.id
        ORDER BY p.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]domain.ProductWithCategory, 0)
	for rows.Next() {
		var product domain.ProductWithCategory
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
			&product.Description,
			&product.Stock,
			&product.CategoryID,
			&product.CategoryName,
		); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepository) CountLowStock(ctx context.Context, threshold int32) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE stock < $1`, threshold).Scan(&count)
	return count, err
}
