package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/shop-service/internal/domain"
)

// ReportRepository exposes read-only aggregate queries for admin reporting.
type ReportRepository interface {
	TotalSales(ctx context.Context) (decimal.Decimal, error)
	SalesByDay(ctx context.Context, from, to time.Time) ([]domain.SalesReportRow, error)
	TopProducts(ctx context.Context, limit int) ([]domain.TopProductRow, error)
	CustomerAnalytics(ctx context.Context) ([]domain.CustomerAnalyticsRow, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates the repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM orders`).Scan(&total)
	return total, err
}

func (r *reportRepository) SalesByDay(ctx context.Context, from, to time.Time) ([]domain.SalesReportRow, error) {
	const query = `
        SELECT DATE(created_at) AS date,
               COUNT(*) AS orders,
               SUM(total_amount) AS revenue
        FROM orders
        WHERE created_at BETWEEN $1 AND $2
        GROUP BY DATE(created_at)
        ORDER BY date DESC`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := make([]domain.SalesReportRow, 0)
	for rows.Next() {
		var row domain.SalesReportRow
		if err := rows.Scan(&row.Date, &row.Orders, &row.Revenue); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}

func (r *reportRepository) TopProducts(ctx context.Context, limit int) ([]domain.TopProductRow, error) {
	const query = `
        SELECT p.id, p.name,
               SUM(oi.quantity) AS total_sold,
               SUM(oi.quantity * oi.price) AS revenue
        FROM products p
        JOIN order_items oi ON p.id = oi.product_id
        GROUP BY p.id
        ORDER BY total_sold DESC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := make([]domain.TopProductRow, 0)
	for rows.Next() {
		var row domain.TopProductRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.TotalSold, &row.Revenue); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}

func (r *reportRepository) CustomerAnalytics(ctx context.Context) ([]domain.CustomerAnalyticsRow, error) {
	const query = `
        SELECT u.id, u.name,
               COUNT(DISTINCT o.id) AS total_orders,
               COALESCE(SUM(o.total_amount), 0) AS total_spent
        FROM users u
        LEFT JOIN orders o ON u.id = o.user_id
        GROUP BY u.id
        ORDER BY total_spent DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := make([]domain.CustomerAnalyticsRow, 0)
	for rows.Next() {
		var row domain.CustomerAnalyticsRow
		if err := rows.Scan(&row.UserID, &row.Name, &row.TotalOrders, &row.TotalSpent); err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}
