package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository stores categories. Lookups return shared.ErrNotFound
// for unknown ids and slugs.
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	// FindAll lists categories alphabetically
	FindAll(ctx context.Context) ([]Category, error)
	// ExistsBySlug ignores the category identified by excludeID
	ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	// Save upserts; a delete of a category still referenced by products
	// fails with shared.ErrConflict.
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}
