package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/events"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

type stubOrderRepo struct {
	createErr   error
	createCalls int
	count       int64
	status      domain.OrderStatus
	lastOrder   *domain.Order
	lastItems   []domain.OrderItem
}

func (s *stubOrderRepo) CreateWithItems(_ context.Context, order *domain.Order, items []domain.OrderItem) error {
	s.createCalls++
	if s.createErr != nil {
		return s.createErr
	}
	order.ID = 42
	order.Status = domain.OrderStatusPending
	order.CreatedAt = time.Now()
	s.lastOrder = order
	s.lastItems = items
	return nil
}

func (s *stubOrderRepo) ListByUser(_ context.Context, _ int64) ([]domain.OrderLine, error) {
	return nil, nil
}

func (s *stubOrderRepo) ListAll(_ context.Context) ([]domain.AdminOrder, error) {
	return nil, nil
}

func (s *stubOrderRepo) GetStatus(_ context.Context, _ int64) (domain.OrderStatus, error) {
	if s.status == "" {
		return domain.OrderStatusPending, nil
	}
	return s.status, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, _ int64, status domain.OrderStatus) error {
	s.status = status
	return nil
}

func (s *stubOrderRepo) Count(_ context.Context) (int64, error) { return s.count, nil }

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPlaceOrderPersistsHeaderAndItems(t *testing.T) {
	repo := &stubOrderRepo{}
	dispatcher := &recordingDispatcher{}
	svc := NewOrderService(repo, dispatcher)

	order, err := svc.PlaceOrder(context.Background(), 3, price("19.98"), "1 Main St",
		[]OrderItemInput{{ProductID: 7, Quantity: 2, Price: price("9.99")}})
	require.NoError(t, err)

	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	require.Len(t, repo.lastItems, 1)
	assert.Equal(t, int64(7), repo.lastItems[0].ProductID)
	assert.Equal(t, int32(2), repo.lastItems[0].Quantity)
	assert.True(t, repo.lastItems[0].Price.Equal(price("9.99")))

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventOrderPlaced, dispatcher.published[0].Type)
}

func TestPlaceOrderAcceptsRepeatedProductLines(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := NewOrderService(repo, nil)

	order, err := svc.PlaceOrder(context.Background(), 3, price("29.97"), "1 Main St",
		[]OrderItemInput{
			{ProductID: 7, Quantity: 2, Price: price("9.99")},
			{ProductID: 7, Quantity: 1, Price: price("9.99")},
		})
	require.NoError(t, err)

	assert.Equal(t, int64(42), order.ID)
	require.Len(t, repo.lastItems, 2, "each submitted line is kept")
	assert.Equal(t, int64(7), repo.lastItems[0].ProductID)
	assert.Equal(t, int64(7), repo.lastItems[1].ProductID)
}

func TestPlaceOrderRejectsEmptyItems(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := NewOrderService(repo, nil)

	_, err := svc.PlaceOrder(context.Background(), 3, decimal.Zero, "1 Main St", nil)
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Zero(t, repo.createCalls)
}

func TestPlaceOrderRejectsTotalMismatch(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := NewOrderService(repo, nil)

	_, err := svc.PlaceOrder(context.Background(), 3, price("10.00"), "1 Main St",
		[]OrderItemInput{{ProductID: 7, Quantity: 2, Price: price("9.99")}})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Equal(t, "19.98", domainErr.Details["computed"])
	assert.Zero(t, repo.createCalls, "no store access on validation failure")
}

func TestPlaceOrderRejectsNegativePrice(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := NewOrderService(repo, nil)

	_, err := svc.PlaceOrder(context.Background(), 3, price("-5.00"), "1 Main St",
		[]OrderItemInput{{ProductID: 7, Quantity: 1, Price: price("-5.00")}})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Zero(t, repo.createCalls)
}

func TestPlaceOrderMapsStoreFailure(t *testing.T) {
	repo := &stubOrderRepo{createErr: errors.New("connection reset")}
	dispatcher := &recordingDispatcher{}
	svc := NewOrderService(repo, dispatcher)

	_, err := svc.PlaceOrder(context.Background(), 3, price("9.99"), "1 Main St",
		[]OrderItemInput{{ProductID: 7, Quantity: 1, Price: price("9.99")}})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.Equal(t, "internal server error", domainErr.Message, "store detail must not leak")
	assert.Empty(t, dispatcher.published, "no event for a failed order")
}

func TestUpdateStatusPublishesOldAndNewStatus(t *testing.T) {
	repo := &stubOrderRepo{status: domain.OrderStatusPaid}
	dispatcher := &recordingDispatcher{}
	svc := NewOrderService(repo, dispatcher)

	require.NoError(t, svc.UpdateStatus(context.Background(), 42, domain.OrderStatusShipped))

	require.Len(t, dispatcher.published, 1)
	payload, ok := dispatcher.published[0].Payload.(events.OrderStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.OrderStatusPaid, payload.OldStatus)
	assert.Equal(t, domain.OrderStatusShipped, payload.NewStatus)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := NewOrderService(&stubOrderRepo{}, nil)

	err := svc.UpdateStatus(context.Background(), 42, domain.OrderStatus("misplaced"))
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}
