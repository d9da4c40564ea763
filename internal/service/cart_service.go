package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// CartService coordinates shopping cart operations.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartService builds the service.
func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// AddItem puts a product in the user's cart, accumulating quantity when the
// product is already there.
func (s *CartService) AddItem(ctx context.Context, userID, productID int64, quantity int32) (*domain.CartItem, error) {
	if quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be positive", map[string]any{"quantity": quantity})
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("product", map[string]any{"id": productID})
		}
		return nil, apperrors.MapError(err)
	}

	item := &domain.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	if err := s.carts.AddItem(ctx, item); err != nil {
		return nil, apperrors.MapError(err)
	}
	return item, nil
}

// ListItems returns the user's cart joined with product data.
func (s *CartService) ListItems(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return lines, nil
}

// RemoveItem deletes one product from the user's cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID int64) error {
	if err := s.carts.RemoveItem(ctx, userID, productID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("cart item", map[string]any{"product_id": productID})
		}
		return apperrors.MapError(err)
	}
	return nil
}
