package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Filter keys understood by ProductRepository.FindAll and Count
const (
	FilterCategoryIDs = "category_ids" // []uuid.UUID
	FilterMinPrice    = "min_price"    // decimal.Decimal, inclusive
	FilterMaxPrice    = "max_price"    // decimal.Decimal, inclusive
	FilterExcludeID   = "exclude_id"   // uuid.UUID
)

// ProductRepository defines the interface for product persistence.
// Loaded products have Category populated.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)

	// FindByIDs returns the products that exist among ids
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll returns products matching filter, newest first unless OrderBy is set.
	// Search matches name or description case-insensitively.
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// ExistsBySlug reports whether another product (not excludeID) uses slug
	ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
