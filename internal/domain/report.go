package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats aggregates headline numbers for the admin dashboard.
type DashboardStats struct {
	TotalSales       decimal.Decimal `json:"total_sales"`
	TotalOrders      int64           `json:"total_orders"`
	TotalUsers       int64           `json:"total_users"`
	LowStockProducts int64           `json:"low_stock_products"`
}

// SalesReportRow is one day of the sales report.
type SalesReportRow struct {
	Date    time.Time       `json:"date"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopProductRow ranks a product by units sold.
type TopProductRow struct {
	ProductID int64           `json:"id"`
	Name      string          `json:"name"`
	TotalSold int64           `json:"total_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// CustomerAnalyticsRow summarizes a customer's order activity.
type CustomerAnalyticsRow struct {
	UserID      int64           `json:"id"`
	Name        string          `json:"name"`
	TotalOrders int64           `json:"total_orders"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
}
