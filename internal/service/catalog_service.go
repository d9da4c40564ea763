package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// ProductInput describes a product create/update payload.
type ProductInput struct {
	Name        string
	Price       decimal.Decimal
	Description string
	Stock       int32
	CategoryID  *int64
}

// CatalogService coordinates product and category management.
type CatalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

// NewCatalogService builds the service.
func NewCatalogService(products repository.ProductRepository, categories repository.CategoryRepository) *CatalogService {
	return &CatalogService{products: products, categories: categories}
}

func (s *CatalogService) validateProduct(input ProductInput) error {
	if input.Price.IsNegative() {
		return apperrors.NewValidationError("price must not be negative", map[string]any{
			"price": input.Price.String(),
		})
	}
	if input.Stock < 0 {
		return apperrors.NewValidationError("stock must not be negative", map[string]any{
			"stock": input.Stock,
		})
	}
	return nil
}

func (s *CatalogService) checkCategory(ctx context.Context, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categories.GetByID(ctx, *categoryID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewValidationError("unknown category", map[string]any{
				"category_id": *categoryID,
			})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// CreateProduct adds a catalog entry.
func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := s.validateProduct(input); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// UpdateProduct replaces a catalog entry's fields.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*domain.Product, error) {
	if err := s.validateProduct(input); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:          id,
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
	}
	if err := s.products.Update(ctx, product); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// DeleteProduct removes a catalog entry.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// ListProducts returns the whole catalog.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return products, nil
}

// ListProductsByCategory filters the catalog by category.
func (s *CatalogService) ListProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	products, err := s.products.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return products, nil
}

// SearchProducts substring-matches the term against name and description.
func (s *CatalogService) SearchProducts(ctx context.Context, term string) ([]domain.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperrors.NewValidationError("search term is required", map[string]any{"term": "is required"})
	}
	products, err := s.products.Search(ctx, term)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return products, nil
}

// UpdateStock sets a product's stock level.
func (s *CatalogService) UpdateStock(ctx context.Context, id int64, stock int32) error {
	if stock < 0 {
		return apperrors.NewValidationError("stock must not be negative", map[string]any{"stock": stock})
	}
	if err := s.products.UpdateStock(ctx, id, stock); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("product", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// ListProductsWithCategory returns the catalog with joined category names.
func (s *CatalogService) ListProductsWithCategory(ctx context.Context) ([]domain.ProductWithCategory, error) {
	products, err := s.products.ListWithCategory(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return products, nil
}

// CreateCategory adds a product category.
func (s *CatalogService) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	category := &domain.Category{Name: name, Description: description}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperrors.MapError(err)
	}
	return category, nil
}

// ListCategories returns all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return categories, nil
}
