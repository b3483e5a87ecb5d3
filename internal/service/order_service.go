package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CodeX-266/storefront/internal/clock"
	"github.com/CodeX-266/storefront/internal/domain"
	"github.com/CodeX-266/storefront/internal/events"
)

// OrderRepository is the persistence surface over the orders collection.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	QueryOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) error
}

// EventPublisher emits order lifecycle events.
type EventPublisher interface {
	PublishOrderPlaced(event events.OrderPlacedEvent) error
	PublishOrderCancelled(event events.OrderCancelledEvent) error
}

type OrderService struct {
	repo     OrderRepository
	producer EventPublisher
	clock    clock.Clock
	logger   *zap.Logger
}

func NewOrderService(repo OrderRepository, producer EventPublisher, clk clock.Clock, logger *zap.Logger) *OrderService {
	return &OrderService{
		repo:     repo,
		producer: producer,
		clock:    clk,
		logger:   logger,
	}
}

type PlaceOrderInput struct {
	UserID    string
	Name      string
	Phone     string
	Address   domain.Address
	Items     []domain.CartItem
	Total     float64
	RequestID string
}

// PlaceOrder persists a new order with status pending and returns its
// identifier. The caller owns clearing the cart and resetting the
// checkout panel; this service knows nothing about either.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (string, error) {
	if in.UserID == "" {
		return "", domain.ErrNotAuthenticated
	}
	if in.Name == "" || in.Phone == "" || !in.Address.Complete() {
		return "", fmt.Errorf("%w: name, phone and address are required", domain.ErrValidation)
	}
	if len(in.Items) == 0 {
		return "", fmt.Errorf("%w: order has no items", domain.ErrValidation)
	}

	var total float64
	items := make([]domain.CartItem, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity < 1 || item.Price < 0 {
			return "", fmt.Errorf("%w: invalid quantity or price for %s", domain.ErrValidation, item.ProductID)
		}
		items = append(items, item)
		total += item.Subtotal()
	}
	// The submitted total must match the snapshot sum exactly.
	if in.Total != 0 && math.Abs(in.Total-total) > 1e-9 {
		return "", fmt.Errorf("%w: total %.2f does not match item sum %.2f", domain.ErrValidation, in.Total, total)
	}

	now := s.clock.Now()
	order := &domain.Order{
		OrderID:     uuid.New().String(),
		UserID:      in.UserID,
		Name:        in.Name,
		Phone:       in.Phone,
		Address:     in.Address,
		Items:       items,
		TotalAmount: total,
		Status:      domain.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		s.logger.Error("Failed to save order",
			zap.String("order_id", order.OrderID),
			zap.String("user_id", order.UserID),
			zap.Error(err))
		return "", fmt.Errorf("%w: %v", domain.ErrOrderPersist, err)
	}

	event := events.OrderPlacedEvent{
		EventID:     uuid.New().String(),
		OrderID:     order.OrderID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Items:       order.Items,
		Status:      string(order.Status),
		Timestamp:   now,
		RequestID:   in.RequestID,
	}
	if err := s.producer.PublishOrderPlaced(event); err != nil {
		// Event delivery is eventually consistent; the order is already saved.
		s.logger.Error("Failed to publish order placed event",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
	}

	s.logger.Info("Order created successfully",
		zap.String("order_id", order.OrderID),
		zap.String("user_id", order.UserID),
		zap.Float64("total_amount", order.TotalAmount))

	return order.OrderID, nil
}

// ListOrders returns the user's orders, most recent first.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	orders, err := s.repo.QueryOrdersByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to fetch orders",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// GetOrder returns a single order owned by userID.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		// Do not reveal other users' orders.
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// CancelOrder sets a pending order to cancelled. The status precondition
// is checked here and re-checked by the repository's conditional write,
// so an administrative transition racing this call is never masked.
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	order, err := s.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.Cancellable() {
		return nil, fmt.Errorf("%w: status is %s", domain.ErrNotCancellable, order.Status)
	}

	if err := s.repo.UpdateOrderStatus(ctx, orderID, domain.OrderStatusPending, domain.OrderStatusCancelled); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	order.Status = domain.OrderStatusCancelled
	order.UpdatedAt = now

	event := events.OrderCancelledEvent{
		EventID:   uuid.New().String(),
		OrderID:   order.OrderID,
		UserID:    order.UserID,
		Timestamp: now,
	}
	if err := s.producer.PublishOrderCancelled(event); err != nil {
		s.logger.Error("Failed to publish order cancelled event",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
	}

	s.logger.Info("Order cancelled",
		zap.String("order_id", order.OrderID),
		zap.String("user_id", order.UserID))

	return order, nil
}
