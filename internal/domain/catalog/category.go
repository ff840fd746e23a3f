package catalog

import (
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
)

const (
	maxCategoryNameLength = 100
	maxCategorySlugLength = 120
)

// Category groups products for browsing
type Category struct {
	shared.AggregateBase
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Slug string `gorm:"type:varchar(120);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a category whose slug is derived from name
func NewCategory(name string) (*Category, error) {
	name, err := validateCategoryName(name)
	if err != nil {
		return nil, err
	}

	category := &Category{
		AggregateBase: shared.NewAggregateBase(),
		Name:          name,
		Slug:          CategorySlugFor(name),
	}
	category.Raise(NewCatalogEvent(EventTypeCategoryCreated, AggregateTypeCategory, category.ID))
	return category, nil
}

// Rename changes the name and regenerates the slug
func (c *Category) Rename(name string) error {
	name, err := validateCategoryName(name)
	if err != nil {
		return err
	}
	c.Name = name
	c.Slug = CategorySlugFor(name)
	c.Touch()
	c.Raise(NewCatalogEvent(EventTypeCategoryUpdated, AggregateTypeCategory, c.ID))
	return nil
}

// CategorySlugFor returns the slug a category with the given name would get
func CategorySlugFor(name string) string {
	return shared.SlugifyMax(strings.TrimSpace(name), maxCategorySlugLength)
}

func validateCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", shared.NewValidationError("Name is required")
	}
	if len(name) > maxCategoryNameLength {
		return "", shared.NewValidationError("Name cannot exceed 100 characters")
	}
	if shared.Slugify(name) == "" {
		return "", shared.NewValidationError("Name must contain letters or digits")
	}
	return name, nil
}
