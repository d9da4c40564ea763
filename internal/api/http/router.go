package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/http/handlers"
	"github.com/spec-kit/shop-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Products       *handlers.ProductsHandler
	Categories     *handlers.CategoriesHandler
	Cart           *handlers.CartHandler
	Orders         *handlers.OrdersHandler
	Users          *handlers.UsersHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/register", cfg.Auth.Register)
	app.Post("/login", cfg.Auth.Login)

	// static product paths come before the :id routes
	app.Get("/products/search", cfg.Products.Search)
	app.Get("/products/category/:categoryId", cfg.Products.ListByCategory)
	app.Get("/products", cfg.Products.List)
	app.Get("/categories", cfg.Categories.List)

	authed := app.Group("", cfg.AuthMiddleware.Handle)
	authed.Post("/logout", cfg.Auth.Logout)

	authed.Post("/cart", cfg.Cart.Add)
	authed.Get("/cart/:userId", auth.RequireSelf("userId"), cfg.Cart.List)
	authed.Delete("/cart/:userId/:productId", auth.RequireSelf("userId"), cfg.Cart.Remove)

	authed.Post("/orders", cfg.Orders.Place)
	authed.Get("/orders/:userId", auth.RequireSelf("userId"), cfg.Orders.ListByUser)

	authed.Get("/users/:userId", auth.RequireSelf("userId"), cfg.Users.Get)
	authed.Put("/users/:userId", auth.RequireSelf("userId"), cfg.Users.Update)

	// catalog mutation is an administrative operation
	adminOnly := authed.Group("", auth.RequireAdmin())
	adminOnly.Post("/products", cfg.Products.Create)
	adminOnly.Put("/products/:id", cfg.Products.Update)
	adminOnly.Delete("/products/:id", cfg.Products.Delete)
	adminOnly.Post("/categories", cfg.Categories.Create)

	admin := authed.Group("/admin", auth.RequireAdmin())
	admin.Get("/dashboard", cfg.Admin.Dashboard)
	admin.Get("/orders", cfg.Admin.ListOrders)
	admin.Put("/orders/:orderId", cfg.Admin.UpdateOrderStatus)
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Put("/users/:userId", cfg.Admin.UpdateUserRole)
	admin.Get("/products", cfg.Admin.ListProducts)
	admin.Put("/products/:id/stock", cfg.Admin.UpdateProductStock)
	admin.Get("/reports/sales", cfg.Admin.SalesReport)
	admin.Get("/reports/top-products", cfg.Admin.TopProducts)
	admin.Get("/reports/customer-analytics", cfg.Admin.CustomerAnalytics)
}
