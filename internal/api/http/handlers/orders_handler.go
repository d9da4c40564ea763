package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/api/validation"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// OrdersHandler exposes order placement and history endpoints.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// Place handles POST /orders. The buyer is the authenticated principal.
func (h *OrdersHandler) Place(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PlaceOrderRequest
	if err := validation.ParseBody(c, &req); err != nil {
		return err
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order, err := h.orders.PlaceOrder(c.UserContext(), principal.User.ID, req.TotalAmount, req.ShippingAddress, items)
	if err != nil {
		return err
	}

	return createdResponse(c, fiber.Map{
		"order_id": order.ID,
		"status":   order.Status,
	})
}

// ListByUser handles GET /orders/:userId.
func (h *OrdersHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return err
	}

	lines, err := h.orders.ListByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return dataResponse(c, lines)
}
