package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/cache"
)

// CatalogCacheInvalidator drops cached catalog listings when categories change
type CatalogCacheInvalidator struct {
	cache  cache.Store
	logger *zap.Logger
}

// NewCatalogCacheInvalidator creates a CatalogCacheInvalidator
func NewCatalogCacheInvalidator(store cache.Store, logger *zap.Logger) *CatalogCacheInvalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogCacheInvalidator{cache: store, logger: logger}
}

// EventTypes implements shared.EventHandler
func (h *CatalogCacheInvalidator) EventTypes() []string {
	return []string{
		catalog.EventTypeCategoryCreated,
		catalog.EventTypeCategoryUpdated,
		catalog.EventTypeCategoryDeleted,
	}
}

// Handle implements shared.EventHandler
func (h *CatalogCacheInvalidator) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.cache.Delete(ctx, CategoriesCacheKey); err != nil {
		h.logger.Warn("Failed to invalidate category cache",
			zap.String("event_type", event.EventType()),
			zap.Error(err))
		return err
	}
	return nil
}

var _ shared.EventHandler = (*CatalogCacheInvalidator)(nil)
