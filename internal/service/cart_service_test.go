package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shop-service/internal/domain"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

type stubCartRepo struct {
	items map[[2]int64]*domain.CartItem
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{items: map[[2]int64]*domain.CartItem{}}
}

func (s *stubCartRepo) AddItem(_ context.Context, item *domain.CartItem) error {
	key := [2]int64{item.UserID, item.ProductID}
	if existing, ok := s.items[key]; ok {
		existing.Quantity += item.Quantity
		item.Quantity = existing.Quantity
		return nil
	}
	clone := *item
	s.items[key] = &clone
	return nil
}

func (s *stubCartRepo) ListByUser(_ context.Context, userID int64) ([]domain.CartLine, error) {
	lines := make([]domain.CartLine, 0)
	for _, item := range s.items {
		if item.UserID == userID {
			lines = append(lines, domain.CartLine{CartItem: *item})
		}
	}
	return lines, nil
}

func (s *stubCartRepo) RemoveItem(_ context.Context, userID, productID int64) error {
	key := [2]int64{userID, productID}
	if _, ok := s.items[key]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.items, key)
	return nil
}

func cartTestProducts() *stubProductRepo {
	return &stubProductRepo{products: map[int64]*domain.Product{
		7: {ID: 7, Name: "Mug", Price: decimal.RequireFromString("9.99"), Stock: 5},
	}}
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	svc := NewCartService(newStubCartRepo(), cartTestProducts())

	item, err := svc.AddItem(context.Background(), 1, 7, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(2), item.Quantity)

	item, err = svc.AddItem(context.Background(), 1, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(5), item.Quantity)

	lines, err := svc.ListItems(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
}

func TestAddItemRejectsUnknownProduct(t *testing.T) {
	svc := NewCartService(newStubCartRepo(), cartTestProducts())

	_, err := svc.AddItem(context.Background(), 1, 999, 1)
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	svc := NewCartService(newStubCartRepo(), cartTestProducts())

	_, err := svc.AddItem(context.Background(), 1, 7, 0)
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestRemoveMissingItemIsNotFound(t *testing.T) {
	svc := NewCartService(newStubCartRepo(), cartTestProducts())

	err := svc.RemoveItem(context.Background(), 1, 7)
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
