package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry. Price uses decimal arithmetic to avoid
// float rounding on money. CategoryID is nil for uncategorized products.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Stock       int32           `json:"stock"`
	CategoryID  *int64          `json:"category_id,omitempty"`
}

// ProductWithCategory joins the category name onto a product row for the
// admin catalog listing.
type ProductWithCategory struct {
	Product
	CategoryName *string `json:"category_name,omitempty"`
}

// Category groups products.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
