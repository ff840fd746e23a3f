package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appevent "github.com/storefront/backend/internal/application/event"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
)

// Listing sizes
const (
	NewestProductsLimit  = 12
	ProductsPerPage      = 6
	RelatedProductsLimit = 3
)

var (
	ErrProductNotFound = shared.NewNotFoundError("Product not found")
	ErrPhotoNotFound   = shared.NewNotFoundError("No photo found")
	// ErrUnknownCategory is returned when a product form names a missing category
	ErrUnknownCategory = shared.NewValidationError("Category not found")
	errPhotoRequired   = shared.NewValidationError("photo is Required and should be less then 1mb")
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	photos       catalog.PhotoStorage
	events       shared.EventPublisher
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	photos catalog.PhotoStorage,
	events shared.EventPublisher,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		photos:       photos,
		events:       events,
		logger:       logger,
	}
}

// Create creates a product together with its photo
func (s *ProductService) Create(ctx context.Context, req ProductRequest) (_ *ProductResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ProductService", "Create")
	defer func() { telemetry.EndSpan(span, err) }()

	details, err := req.details()
	if err != nil {
		return nil, err
	}
	if req.Photo == nil {
		return nil, errPhotoRequired
	}
	if err := catalog.ValidatePhoto(int64(len(req.Photo.Data)), req.Photo.ContentType); err != nil {
		return nil, err
	}
	category, err := s.category(ctx, details.CategoryID)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(details)
	if err != nil {
		return nil, err
	}
	product.Category = category
	if err := s.ensureUniqueSlug(ctx, product); err != nil {
		return nil, err
	}
	if err := s.storePhoto(ctx, product, req.Photo); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		s.deletePhoto(ctx, product.Photo.Key)
		return nil, fmt.Errorf("save product: %w", err)
	}
	appevent.PublishPending(ctx, s.events, s.logger, product)

	s.logger.Info("Product created", zap.String("product_id", product.ID.String()), zap.String("slug", product.Slug))
	resp := ToProductResponse(product)
	return &resp, nil
}

// Update replaces a product's attributes; the photo is replaced only when one is uploaded
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req ProductRequest) (_ *ProductResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ProductService", "Update")
	defer func() { telemetry.EndSpan(span, err) }()

	details, err := req.details()
	if err != nil {
		return nil, err
	}
	if req.Photo != nil {
		if err := catalog.ValidatePhoto(int64(len(req.Photo.Data)), req.Photo.ContentType); err != nil {
			return nil, err
		}
	}

	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	category, err := s.category(ctx, details.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := product.Update(details); err != nil {
		return nil, err
	}
	product.Category = category
	if err := s.ensureUniqueSlug(ctx, product); err != nil {
		return nil, err
	}
	if req.Photo != nil {
		if err := s.storePhoto(ctx, product, req.Photo); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	appevent.PublishPending(ctx, s.events, s.logger, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetBySlug returns a single product with its category
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Photo returns the photo bytes and content type of a product
func (s *ProductService) Photo(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, "", ErrPhotoNotFound
		}
		return nil, "", fmt.Errorf("find product: %w", err)
	}
	if product.Photo.IsZero() {
		return nil, "", ErrPhotoNotFound
	}

	data, contentType, err := s.photos.Get(ctx, product.Photo.Key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Product photo missing from storage", zap.String("product_id", id.String()))
			return nil, "", ErrPhotoNotFound
		}
		return nil, "", fmt.Errorf("load photo: %w", err)
	}
	if contentType == "" {
		contentType = product.Photo.ContentType
	}
	return data, contentType, nil
}

// Delete removes a product and its photo
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ProductService", "Delete")
	defer func() { telemetry.EndSpan(span, err) }()

	product, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}
	s.deletePhoto(ctx, product.Photo.Key)

	product.Raise(catalog.NewCatalogEvent(catalog.EventTypeProductDeleted, catalog.AggregateTypeProduct, id))
	appevent.PublishPending(ctx, s.events, s.logger, product)

	s.logger.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

// Newest returns the most recently created products
func (s *ProductService) Newest(ctx context.Context) (*ProductList, error) {
	filter := shared.Filter{PageSize: NewestProductsLimit, OrderBy: "created_at", OrderDir: "desc"}
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return &ProductList{Products: ToProductResponses(products), CountTotal: len(products)}, nil
}

// Filter returns products in any of the checked categories whose price lies
// within the inclusive radio range. Both parts are optional.
func (s *ProductService) Filter(ctx context.Context, req ProductFilterRequest) ([]ProductResponse, error) {
	filter := shared.Filter{OrderBy: "created_at", OrderDir: "desc", Filters: map[string]any{}}

	if len(req.Checked) > 0 {
		ids := make([]uuid.UUID, 0, len(req.Checked))
		for _, raw := range req.Checked {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, shared.NewValidationError(fmt.Sprintf("Invalid category id %q", raw))
			}
			ids = append(ids, id)
		}
		filter.Filters[catalog.FilterCategoryIDs] = ids
	}

	switch len(req.Radio) {
	case 0:
	case 2:
		filter.Filters[catalog.FilterMinPrice] = req.Radio[0]
		filter.Filters[catalog.FilterMaxPrice] = req.Radio[1]
	default:
		return nil, shared.NewValidationError("radio must be a [min, max] price range")
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("filter products: %w", err)
	}
	return ToProductResponses(products), nil
}

// Count returns the number of products
func (s *ProductService) Count(ctx context.Context) (int64, error) {
	return s.productRepo.Count(ctx, shared.Filter{})
}

// ListPage returns one page of products, newest first. Pages start at 1.
func (s *ProductService) ListPage(ctx context.Context, page int) (*shared.Paginated[ProductResponse], error) {
	if page < 1 {
		page = 1
	}
	filter := shared.Filter{Page: page, PageSize: ProductsPerPage, OrderBy: "created_at", OrderDir: "desc"}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	result := shared.NewPaginated(ToProductResponses(products), total, page, ProductsPerPage)
	return &result, nil
}

// Search matches keyword against product names and descriptions
func (s *ProductService) Search(ctx context.Context, keyword string) ([]ProductResponse, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []ProductResponse{}, nil
	}
	products, err := s.productRepo.FindAll(ctx, shared.Filter{Search: keyword, OrderBy: "created_at", OrderDir: "desc"})
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return ToProductResponses(products), nil
}

// Related returns other products from the same category
func (s *ProductService) Related(ctx context.Context, productID, categoryID uuid.UUID) ([]ProductResponse, error) {
	filter := shared.Filter{
		PageSize: RelatedProductsLimit,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters: map[string]any{
			catalog.FilterCategoryIDs: []uuid.UUID{categoryID},
			catalog.FilterExcludeID:   productID,
		},
	}
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("related products: %w", err)
	}
	return ToProductResponses(products), nil
}

// ByCategory returns a category and all of its products
func (s *ProductService) ByCategory(ctx context.Context, slug string) (*CategoryProducts, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx, shared.Filter{
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  map[string]any{catalog.FilterCategoryIDs: []uuid.UUID{category.ID}},
	})
	if err != nil {
		return nil, fmt.Errorf("list category products: %w", err)
	}
	return &CategoryProducts{
		Category: ToCategoryResponse(category),
		Products: ToProductResponses(products),
	}, nil
}

func (s *ProductService) find(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}

func (s *ProductService) category(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrUnknownCategory
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return category, nil
}

// ensureUniqueSlug suffixes the slug when another product already uses it
func (s *ProductService) ensureUniqueSlug(ctx context.Context, product *catalog.Product) error {
	taken, err := s.productRepo.ExistsBySlug(ctx, product.Slug, product.ID)
	if err != nil {
		return fmt.Errorf("check product slug: %w", err)
	}
	if taken {
		product.DisambiguateSlug()
	}
	return nil
}

func (s *ProductService) storePhoto(ctx context.Context, product *catalog.Product, photo *PhotoUpload) error {
	key := catalog.PhotoKeyFor(product.ID)
	if err := s.photos.Put(ctx, key, photo.Data, photo.ContentType); err != nil {
		return fmt.Errorf("store photo: %w", err)
	}
	previous := product.AttachPhoto(catalog.Photo{
		Key:         key,
		ContentType: photo.ContentType,
		Size:        int64(len(photo.Data)),
	})
	if previous != "" && previous != key {
		s.deletePhoto(ctx, previous)
	}
	return nil
}

// deletePhoto removes a stored photo; failures leave an orphan and are only logged
func (s *ProductService) deletePhoto(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.photos.Delete(ctx, key); err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Warn("Failed to delete product photo", zap.String("key", key), zap.Error(err))
	}
}

// details parses and validates the text fields of a product form
func (r ProductRequest) details() (catalog.ProductDetails, error) {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return catalog.ProductDetails{}, shared.NewValidationError("Name is Required")
	case strings.TrimSpace(r.Description) == "":
		return catalog.ProductDetails{}, shared.NewValidationError("Description is Required")
	case strings.TrimSpace(r.Price) == "":
		return catalog.ProductDetails{}, shared.NewValidationError("Price is Required")
	case strings.TrimSpace(r.Category) == "":
		return catalog.ProductDetails{}, shared.NewValidationError("Category is Required")
	case strings.TrimSpace(r.Quantity) == "":
		return catalog.ProductDetails{}, shared.NewValidationError("Quantity is Required")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil {
		return catalog.ProductDetails{}, shared.NewValidationError("Price must be a number")
	}
	categoryID, err := uuid.Parse(strings.TrimSpace(r.Category))
	if err != nil {
		return catalog.ProductDetails{}, ErrUnknownCategory
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(r.Quantity))
	if err != nil {
		return catalog.ProductDetails{}, shared.NewValidationError("Quantity must be a whole number")
	}
	shipping, err := parseShipping(r.Shipping)
	if err != nil {
		return catalog.ProductDetails{}, err
	}

	d := catalog.ProductDetails{
		Name:        r.Name,
		Description: r.Description,
		Price:       price,
		CategoryID:  categoryID,
		Quantity:    quantity,
		Shipping:    shipping,
	}
	return d, d.Validate()
}

func parseShipping(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "no":
		return false, nil
	case "1", "true", "yes":
		return true, nil
	}
	return false, shared.NewValidationError("Shipping must be yes or no")
}
