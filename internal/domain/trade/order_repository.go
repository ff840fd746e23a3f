package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Filter keys understood by OrderRepository.FindAll and Count
const (
	FilterStatus  = "status"   // OrderStatus
	FilterBuyerID = "buyer_id" // uuid.UUID
)

// OrderRepository defines the interface for order persistence.
// Loaded orders have Items and Buyer populated.
type OrderRepository interface {
	// Create inserts the order with its items
	Create(ctx context.Context, order *Order) error
	// UpdateStatus persists the order's status
	UpdateStatus(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindAll returns orders matching filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
