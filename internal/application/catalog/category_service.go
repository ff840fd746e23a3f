package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appevent "github.com/storefront/backend/internal/application/event"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
)

// CategoriesCacheKey holds the cached category listing
const CategoriesCacheKey = "catalog:categories"

var (
	ErrCategoryExists      = shared.NewDomainError(shared.CodeAlreadyExists, "Category Already Exists").WithStatus(http.StatusBadRequest)
	ErrCategoryNotFound    = shared.NewNotFoundError("Category not found")
	ErrCategoryHasProducts = shared.NewDomainError(shared.CodeConflict, "Category has products")
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
	cache        cache.Store
	cacheTTL     time.Duration
	events       shared.EventPublisher
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService. The category listing is
// cached in store for ttl; CatalogCacheInvalidator drops it on changes.
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
	store cache.Store,
	ttl time.Duration,
	events shared.EventPublisher,
	logger *zap.Logger,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		cache:        store,
		cacheTTL:     ttl,
		events:       events,
		logger:       logger,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CategoryRequest) (_ *CategoryResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "CategoryService", "Create")
	defer func() { telemetry.EndSpan(span, err) }()

	category, err := catalog.NewCategory(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, category.Slug, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.save(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("Category created", zap.String("category_id", category.ID.String()), zap.String("slug", category.Slug))
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Update renames a category and regenerates its slug
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req CategoryRequest) (_ *CategoryResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "CategoryService", "Update")
	defer func() { telemetry.EndSpan(span, err) }()

	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := category.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, category.Slug, category.ID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// List returns every category ordered by name, served from cache when possible
func (s *CategoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	var cached []CategoryResponse
	if s.cache != nil {
		hit, err := s.cache.Get(ctx, CategoriesCacheKey, &cached)
		if err != nil {
			s.logger.Warn("Category cache read failed", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	resp := ToCategoryResponses(categories)

	if s.cache != nil {
		if err := s.cache.Set(ctx, CategoriesCacheKey, resp, s.cacheTTL); err != nil {
			s.logger.Warn("Category cache write failed", zap.Error(err))
		}
	}
	return resp, nil
}

// GetBySlug returns a single category
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category that no product references
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "CategoryService", "Delete")
	defer func() { telemetry.EndSpan(span, err) }()

	category, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return ErrCategoryHasProducts
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ErrCategoryNotFound
		}
		// Lost a race with a product insert; the FK refuses the delete.
		if errors.Is(err, shared.ErrConflict) {
			return ErrCategoryHasProducts
		}
		return fmt.Errorf("delete category: %w", err)
	}

	category.Raise(catalog.NewCatalogEvent(catalog.EventTypeCategoryDeleted, catalog.AggregateTypeCategory, id))
	appevent.PublishPending(ctx, s.events, s.logger, category)

	s.logger.Info("Category deleted", zap.String("category_id", id.String()))
	return nil
}

func (s *CategoryService) find(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) ensureUnique(ctx context.Context, slug string, excludeID uuid.UUID) error {
	exists, err := s.categoryRepo.ExistsBySlug(ctx, slug, excludeID)
	if err != nil {
		return fmt.Errorf("check category slug: %w", err)
	}
	if exists {
		return ErrCategoryExists
	}
	return nil
}

func (s *CategoryService) save(ctx context.Context, category *catalog.Category) error {
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return ErrCategoryExists
		}
		return fmt.Errorf("save category: %w", err)
	}
	appevent.PublishPending(ctx, s.events, s.logger, category)
	return nil
}
