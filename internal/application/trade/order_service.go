package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appevent "github.com/storefront/backend/internal/application/event"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
)

// Admin order listing page sizes
const (
	DefaultOrdersPageSize = 50
	MaxOrdersPageSize     = 200
)

var ErrOrderNotFound = shared.NewNotFoundError("Order not found")

// OrderService serves order history and fulfilment updates
type OrderService struct {
	orderRepo trade.OrderRepository
	events    shared.EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo trade.OrderRepository, events shared.EventPublisher, logger *zap.Logger) *OrderService {
	return &OrderService{orderRepo: orderRepo, events: events, logger: logger}
}

// BuyerOrders returns the orders of one buyer, newest first
func (s *OrderService) BuyerOrders(ctx context.Context, buyerID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindAll(ctx, shared.Filter{
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  map[string]any{trade.FilterBuyerID: buyerID},
	})
	if err != nil {
		return nil, fmt.Errorf("list buyer orders: %w", err)
	}
	return ToOrderResponses(orders), nil
}

// AllOrders returns one page of every order, newest first
func (s *OrderService) AllOrders(ctx context.Context, page, pageSize int) (*shared.Paginated[OrderResponse], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultOrdersPageSize
	}
	if pageSize > MaxOrdersPageSize {
		pageSize = MaxOrdersPageSize
	}
	filter := shared.Filter{Page: page, PageSize: pageSize, OrderBy: "created_at", OrderDir: "desc"}

	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	result := shared.NewPaginated(ToOrderResponses(orders), total, page, pageSize)
	return &result, nil
}

// UpdateStatus moves an order to status
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (_ *OrderResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "OrderService", "UpdateStatus")
	defer func() { telemetry.EndSpan(span, err) }()

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	from := order.Status
	if err := order.UpdateStatus(trade.OrderStatus(status)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, order); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	appevent.PublishPending(ctx, s.events, s.logger, order)

	s.logger.Info("Order status changed",
		zap.String("order_id", id.String()),
		zap.String("from", from.String()),
		zap.String("to", order.Status.String()))
	resp := ToOrderResponse(order)
	return &resp, nil
}
