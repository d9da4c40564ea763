package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/shop-service/internal/domain"
)

// AddCartItemRequest payload for adding an item to the caller's cart.
type AddCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int32 `json:"quantity" validate:"required,gt=0"`
}

// OrderItemRequest is one order line as submitted by the client.
type OrderItemRequest struct {
	ProductID int64           `json:"product_id" validate:"required,gt=0"`
	Quantity  int32           `json:"quantity" validate:"required,gt=0"`
	Price     decimal.Decimal `json:"price" validate:"-"`
}

// PlaceOrderRequest payload for order placement. The order service
// recomputes the total from the items and rejects a mismatch.
type PlaceOrderRequest struct {
	TotalAmount     decimal.Decimal    `json:"total_amount" validate:"-"`
	ShippingAddress string             `json:"shipping_address" validate:"required,min=1,max=500"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// Normalize trims the shipping address.
func (r *PlaceOrderRequest) Normalize() {
	r.ShippingAddress = strings.TrimSpace(r.ShippingAddress)
}

// UpdateOrderStatusRequest payload for the admin order-status endpoint.
type UpdateOrderStatusRequest struct {
	Status domain.OrderStatus `json:"status" validate:"required,oneof=pending paid shipped delivered cancelled"`
}

// UpdateUserRoleRequest payload for the admin role endpoint.
type UpdateUserRoleRequest struct {
	Role domain.UserRole `json:"role" validate:"required,oneof=user admin"`
}

// UpdateProfileRequest payload for profile updates.
type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=50"`
	Email string `json:"email" validate:"required,email"`
}

// Normalize trims the name and canonicalizes the email.
func (r *UpdateProfileRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}
