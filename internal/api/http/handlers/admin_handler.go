package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/api/validation"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// AdminHandler exposes the admin dashboard, management and reporting
// endpoints. Every route here sits behind the admin role guard.
type AdminHandler struct {
	orders  *service.OrderService
	users   *service.UserService
	catalog *service.CatalogService
	reports *service.ReportService
}

// AdminDependencies bundles services for the admin surface.
type AdminDependencies struct {
	Orders  *service.OrderService
	Users   *service.UserService
	Catalog *service.CatalogService
	Reports *service.ReportService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(deps AdminDependencies) *AdminHandler {
	return &AdminHandler{
		orders:  deps.Orders,
		users:   deps.Users,
		catalog: deps.Catalog,
		reports: deps.Reports,
	}
}

// Dashboard handles GET /admin/dashboard.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.reports.DashboardStats(c.UserContext())
	if err != nil {
		return err
	}
	return dataResponse(c, stats)
}

// ListOrders handles GET /admin/orders.
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return dataResponse(c, orders)
}

// UpdateOrderStatus handles PUT /admin/orders/:orderId.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	orderID, err := parseIDParam(c, "orderId")
	if err != nil {
		return err
	}

	var req dto.UpdateOrderStatusRequest
	if err := validation.ParseBody(c, &req); err != nil {
		return err
	}

	if err := h.orders.UpdateStatus(c.UserContext(), orderID, req.Status); err != nil {
		return err
	}
	return dataResponse(c, fiber.Map{"order_id": orderID, "status": req.Status})
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.ListUsers(c.UserContext())
	if err != nil {
		return err
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.NewUserResponse(&users[i]))
	}
	return dataResponse(c, resp)
}

// UpdateUserRole handles PUT /admin/users/:userId.
func (h *AdminHandler) UpdateUserRole(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return err
	}

	var req dto.UpdateUserRoleRequest
	if err := validation.ParseBody(c, &req); err != nil {
		return err
	}

	if err := h.users.UpdateRole(c.UserContext(), userID, req.Role); err != nil {
		return err
	}
	return dataResponse(c, fiber.Map{"user_id": userID, "role": req.Role})
}

// ListProducts handles GET /admin/products.
func (h *AdminHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.catalog.ListProductsWithCategory(c.UserContext())
	if err != nil {
		return err
	}
	return dataResponse(c, products)
}

// UpdateProductStock handles PUT /admin/products/:id/stock.
func (h *AdminHandler) UpdateProductStock(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.StockUpdateRequest
	if err := validation.ParseBody(c, &req); err != nil {
		return err
	}

	if err := h.catalog.UpdateStock(c.UserContext(), id, req.Stock); err != nil {
		return err
	}
	return dataResponse(c, fiber.Map{"product_id": id, "stock": req.Stock})
}

// SalesReport handles GET /admin/reports/sales?start_date=&end_date=.
func (h *AdminHandler) SalesReport(c *fiber.Ctx) error {
	from, err := parseDateQuery(c, "start_date")
	if err != nil {
		return err
	}
	to, err := parseDateQuery(c, "end_date")
	if err != nil {
		return err
	}
	// the end date is inclusive
	to = to.Add(24*time.Hour - time.Nanosecond)

	rows, err := h.reports.SalesReport(c.UserContext(), from, to)
	if err != nil {
		return err
	}
	return dataResponse(c, rows)
}

// TopProducts handles GET /admin/reports/top-products.
func (h *AdminHandler) TopProducts(c *fiber.Ctx) error {
	rows, err := h.reports.TopProducts(c.UserContext())
	if err != nil {
		return err
	}
	return dataResponse(c, rows)
}

// CustomerAnalytics handles GET /admin/reports/customer-analytics.
func (h *AdminHandler) CustomerAnalytics(c *fiber.Ctx) error {
	rows, err := h.reports.CustomerAnalytics(c.UserContext())
	if err != nil {
		return err
	}
	return dataResponse(c, rows)
}

func parseDateQuery(c *fiber.Ctx, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, apperrors.NewValidationError("missing query parameter", map[string]any{
			name: "is required",
		})
	}
	parsed, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("invalid query parameter", map[string]any{
			name: "must be formatted YYYY-MM-DD",
		})
	}
	return parsed, nil
}
