package dto

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProductRequest payload for creating or updating a product. Price bounds
// are checked by the catalog service with decimal arithmetic.
type ProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Price       decimal.Decimal `json:"price" validate:"-"`
	Description string          `json:"description" validate:"max=2000"`
	Stock       int32           `json:"stock" validate:"gte=0"`
	CategoryID  *int64          `json:"category_id" validate:"omitempty,gt=0"`
}

// Normalize trims the product name.
func (r *ProductRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

// StockUpdateRequest payload for the admin stock endpoint.
type StockUpdateRequest struct {
	Stock int32 `json:"stock" validate:"gte=0"`
}

// CategoryRequest payload for creating a category.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=2000"`
}

// Normalize trims the category name.
func (r *CategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}
