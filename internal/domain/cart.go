package domain

import "github.com/shopspring/decimal"

// CartItem is one line in a user's cart, keyed by (user, product).
type CartItem struct {
	UserID    int64 `json:"user_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

// CartLine is a cart item joined with its product data for display.
type CartLine struct {
	CartItem
	ProductName string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}
