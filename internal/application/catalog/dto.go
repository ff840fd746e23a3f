package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
)

// CategoryRequest creates or renames a category
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PhotoUpload is an uploaded product image
type PhotoUpload struct {
	Data        []byte
	ContentType string
}

// ProductRequest carries the product form. Numeric fields arrive as text
// from multipart forms and are parsed by the service.
type ProductRequest struct {
	Name        string       `form:"name"`
	Description string       `form:"description"`
	Price       string       `form:"price"`
	Category    string       `form:"category"`
	Quantity    string       `form:"quantity"`
	Shipping    string       `form:"shipping"`
	Photo       *PhotoUpload `form:"-"`
}

// ProductFilterRequest selects products by category and price range
type ProductFilterRequest struct {
	Checked []string          `json:"checked"`
	Radio   []decimal.Decimal `json:"radio"`
}

// ProductResponse represents a product in API responses. Photo bytes are
// served separately.
type ProductResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	Price       decimal.Decimal   `json:"price"`
	CategoryID  uuid.UUID         `json:"categoryId"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Quantity    int               `json:"quantity"`
	Shipping    bool              `json:"shipping"`
	HasPhoto    bool              `json:"hasPhoto"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// ProductList is the newest-products listing
type ProductList struct {
	Products   []ProductResponse `json:"products"`
	CountTotal int               `json:"countTotal"`
}

// CategoryProducts lists the products of one category
type CategoryProducts struct {
	Category CategoryResponse  `json:"category"`
	Products []ProductResponse `json:"products"`
}

// ToCategoryResponse converts a domain category to a response
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	return out
}

// ToProductResponse converts a domain product to a response
func ToProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
		Quantity:    p.Quantity,
		Shipping:    p.Shipping,
		HasPhoto:    !p.Photo.IsZero(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Category != nil {
		category := ToCategoryResponse(p.Category)
		resp.Category = &category
	}
	return resp
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}
