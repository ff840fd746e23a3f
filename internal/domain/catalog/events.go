package catalog

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeCategory = "Category"
	AggregateTypeProduct  = "Product"
)

// Event type constants
const (
	EventTypeCategoryCreated = "CategoryCreated"
	EventTypeCategoryUpdated = "CategoryUpdated"
	EventTypeCategoryDeleted = "CategoryDeleted"
	EventTypeProductCreated  = "ProductCreated"
	EventTypeProductUpdated  = "ProductUpdated"
	EventTypeProductDeleted  = "ProductDeleted"
)

// CatalogEvent is a catalog change notification; consumers reload state by id
type CatalogEvent struct {
	shared.BaseDomainEvent
}

// NewCatalogEvent creates a catalog event of the given type
func NewCatalogEvent(eventType, aggType string, id uuid.UUID) *CatalogEvent {
	return &CatalogEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, aggType, id),
	}
}
