package catalog

import (
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// MaxPhotoSize is the largest accepted product photo, in bytes
const MaxPhotoSize int64 = 1_000_000

// MaxQuantity is the largest stock count a product can hold
const MaxQuantity = math.MaxInt32

// MaxPrice is the largest price a DECIMAL(12,2) column stores
var MaxPrice = decimal.RequireFromString("9999999999.99")

const (
	maxProductNameLength = 200
	maxProductSlugLength = 220
	// "-" plus six hex digits of the id
	slugSuffixLength = 7
)

// Photo references the stored image of a product
type Photo struct {
	Key         string `gorm:"column:photo_key;type:varchar(255)"`
	ContentType string `gorm:"column:photo_content_type;type:varchar(100)"`
	Size        int64  `gorm:"column:photo_size;not null;default:0"`
}

// IsZero reports whether no photo is attached
func (p Photo) IsZero() bool {
	return p.Key == ""
}

// Product is a sellable catalog item
type Product struct {
	shared.AggregateBase
	Name        string          `gorm:"type:varchar(200);not null"`
	Slug        string          `gorm:"type:varchar(220);not null;uniqueIndex"`
	Description string          `gorm:"type:text;not null"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;index"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category    *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	Quantity    int             `gorm:"not null;default:0"`
	Shipping    bool            `gorm:"not null;default:false"`
	Photo       Photo           `gorm:"embedded"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// ProductDetails holds the editable attributes of a product
type ProductDetails struct {
	Name        string
	Description string
	Price       decimal.Decimal
	CategoryID  uuid.UUID
	Quantity    int
	Shipping    bool
}

// Validate checks the numeric and textual invariants of a product
func (d ProductDetails) Validate() error {
	switch {
	case strings.TrimSpace(d.Name) == "":
		return shared.NewValidationError("Name is Required")
	case len(strings.TrimSpace(d.Name)) > maxProductNameLength:
		return shared.NewValidationError("Name cannot exceed 200 characters")
	case strings.TrimSpace(d.Description) == "":
		return shared.NewValidationError("Description is Required")
	case d.Price.IsNegative():
		return shared.NewValidationError("Price cannot be negative")
	case d.Price.Round(2).GreaterThan(MaxPrice):
		return shared.NewValidationError("Price cannot exceed 9999999999.99")
	case d.CategoryID == uuid.Nil:
		return shared.NewValidationError("Category is Required")
	case d.Quantity < 0:
		return shared.NewValidationError("Quantity cannot be negative")
	case d.Quantity > MaxQuantity:
		return shared.NewValidationError("Quantity cannot exceed 2147483647")
	}
	if shared.Slugify(d.Name) == "" {
		return shared.NewValidationError("Name must contain letters or digits")
	}
	return nil
}

// NewProduct creates a product; the slug is derived from the name
func NewProduct(d ProductDetails) (*Product, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	product := &Product{AggregateBase: shared.NewAggregateBase()}
	product.apply(d)
	product.Raise(NewCatalogEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID))
	return product, nil
}

// Update replaces the product's attributes and regenerates the slug
func (p *Product) Update(d ProductDetails) error {
	if err := d.Validate(); err != nil {
		return err
	}
	p.apply(d)
	p.Touch()
	p.Raise(NewCatalogEvent(EventTypeProductUpdated, AggregateTypeProduct, p.ID))
	return nil
}

func (p *Product) apply(d ProductDetails) {
	p.Name = strings.TrimSpace(d.Name)
	p.Slug = shared.SlugifyMax(p.Name, maxProductSlugLength-slugSuffixLength)
	p.Description = strings.TrimSpace(d.Description)
	p.Price = d.Price.Round(2)
	if p.CategoryID != d.CategoryID {
		p.Category = nil
	}
	p.CategoryID = d.CategoryID
	p.Quantity = d.Quantity
	p.Shipping = d.Shipping
}

// DisambiguateSlug appends a short id suffix so the slug no longer collides
func (p *Product) DisambiguateSlug() {
	p.Slug = shared.SlugifyMax(p.Name, maxProductSlugLength-slugSuffixLength) +
		"-" + strings.ReplaceAll(p.ID.String(), "-", "")[:slugSuffixLength-1]
}

// AttachPhoto records a stored photo and returns the key of the photo it replaced, if any
func (p *Product) AttachPhoto(photo Photo) (previousKey string) {
	previousKey = p.Photo.Key
	p.Photo = photo
	p.Touch()
	return previousKey
}

// PhotoKeyFor returns the storage key for a product photo
func PhotoKeyFor(productID uuid.UUID) string {
	return "products/" + productID.String() + "/photo"
}

// ValidatePhoto checks the size and type of an uploaded photo
func ValidatePhoto(size int64, contentType string) error {
	if size <= 0 || size > MaxPhotoSize {
		return shared.NewValidationError("photo is Required and should be less then 1mb")
	}
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return shared.NewValidationError("photo must be an image")
	}
	return nil
}
