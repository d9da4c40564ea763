package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/api/validation"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// CartHandler exposes shopping cart endpoints.
type CartHandler struct {
	carts *service.CartService
}

// NewCartHandler constructs handler.
func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Add handles POST /cart. The cart owner is the authenticated principal,
// not a body field.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.AddCartItemRequest
	if err := validation.ParseBody(c, &req); err != nil {
		return err
	}

	item, err := h.carts.AddItem(c.UserContext(), principal.User.ID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return createdResponse(c, item)
}

// List handles GET /cart/:userId.
func (h *CartHandler) List(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return err
	}

	lines, err := h.carts.ListItems(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return dataResponse(c, lines)
}

// Remove handles DELETE /cart/:userId/:productId.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return err
	}
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		return err
	}

	if err := h.carts.RemoveItem(c.UserContext(), userID, productID); err != nil {
		return err
	}
	return dataResponse(c, fiber.Map{"removed": productID})
}
