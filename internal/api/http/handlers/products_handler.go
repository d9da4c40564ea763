package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/api/validation"
	"github.com/spec-kit/shop-service/internal/service"
)

// ProductsHandler exposes the public and admin catalog endpoints for products.
type ProductsHandler struct {
	catalog *service.CatalogService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(catalog *service.CatalogService) *ProductsHandler {
	return &ProductsHandler{catalog: catalog}
}

// List handles GET /products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.catalog.ListProducts(c.UserContext())
	if err != nil {
		return err
	}
	return dataResponse(c, products)
}

// Create handles POST /products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := validation.ParseBody(c, &req); err != nil {
		return err
	}

	product, err := h.catalog.CreateProduct(c.UserContext(), productInput(req))
	if err != nil {
		return err
	}
	return createdResponse(c, product)
}

// Update handles PUT /products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.ProductRequest
	if err := validation.ParseBody(c, &req); err != nil {
		return err
	}

	product, err := h.catalog.UpdateProduct(c.UserContext(), id, productInput(req))
	if err != nil {
		return err
	}
	return dataResponse(c, product)
}

// Delete handles DELETE /products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteProduct(c.UserContext(), id); err != nil {
		return err
	}
	return dataResponse(c, fiber.Map{"deleted": id})
}

// ListByCategory handles GET /products/category/:categoryId.
func (h *ProductsHandler) ListByCategory(c *fiber.Ctx) error {
	categoryID, err := parseIDParam(c, "categoryId")
	if err != nil {
		return err
	}

	products, err := h.catalog.ListProductsByCategory(c.UserContext(), categoryID)
	if err != nil {
		return err
	}
	return dataResponse(c, products)
}

// Search handles GET /products/search?term=.
func (h *ProductsHandler) Search(c *fiber.Ctx) error {
	products, err := h.catalog.SearchProducts(c.UserContext(), c.Query("term"))
	if err != nil {
		return err
	}
	return dataResponse(c, products)
}

func productInput(req dto.ProductRequest) service.ProductInput {
	return service.ProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	}
}
