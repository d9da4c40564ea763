package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/events"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// OrderItemInput is one order line submitted by the caller.
type OrderItemInput struct {
	ProductID int64
	Quantity  int32
	Price     decimal.Decimal
}

// OrderService coordinates order placement and retrieval.
type OrderService struct {
	orders     repository.OrderRepository
	dispatcher events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{orders: orders, dispatcher: dispatcher}
}

// PlaceOrder persists an order and its items as one atomic aggregate. The
// submitted total must equal the sum of item price times quantity; the
// client-side figure is never trusted on its own.
func (s *OrderService) PlaceOrder(ctx context.Context, userID int64, totalAmount decimal.Decimal, shippingAddress string, items []OrderItemInput) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, apperrors.NewValidationError("order must contain at least one item", nil)
	}

	computed := decimal.Zero
	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Price.IsNegative() {
			return nil, apperrors.NewValidationError("item price must not be negative", map[string]any{
				"product_id": item.ProductID,
			})
		}
		computed = computed.Add(item.Price.Mul(decimal.NewFromInt32(item.Quantity)))
		orderItems = append(orderItems, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if !computed.Equal(totalAmount) {
		return nil, apperrors.NewValidationError("total_amount does not match order items", map[string]any{
			"submitted": totalAmount.String(),
			"computed":  computed.String(),
		})
	}

	order := &domain.Order{
		UserID:          userID,
		TotalAmount:     totalAmount,
		ShippingAddress: shippingAddress,
	}
	if err := s.orders.CreateWithItems(ctx, order, orderItems); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrderPlaced,
			Timestamp: time.Now(),
			Payload: events.OrderPlacedPayload{
				OrderID:     order.ID,
				UserID:      order.UserID,
				TotalAmount: order.TotalAmount,
				ItemCount:   len(orderItems),
			},
		})
	}
	return order, nil
}

// ListByUser returns a user's order history with joined item and product data.
func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]domain.OrderLine, error) {
	lines, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return lines, nil
}

// ListAll returns every order with customer data, newest first.
func (s *OrderService) ListAll(ctx context.Context) ([]domain.AdminOrder, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return orders, nil
}

// UpdateStatus moves an order to a new lifecycle state.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	if !status.Valid() {
		return apperrors.NewValidationError("unknown order status", map[string]any{"status": string(status)})
	}
	oldStatus, err := s.orders.GetStatus(ctx, orderID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrderStatusChanged,
			Timestamp: time.Now(),
			Payload: events.OrderStatusChangedPayload{
				OrderID:   orderID,
				OldStatus: oldStatus,
				NewStatus: status,
			},
		})
	}
	return nil
}
