package catalog

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() ProductDetails {
	return ProductDetails{
		Name:        "NUS T-shirt",
		Description: "Plain NUS T-shirt for sale",
		Price:       decimal.RequireFromString("4.99"),
		CategoryID:  uuid.New(),
		Quantity:    10,
		Shipping:    true,
	}
}

func TestNewProduct(t *testing.T) {
	t.Run("creates product with slug", func(t *testing.T) {
		details := validDetails()
		product, err := NewProduct(details)

		require.NoError(t, err)
		assert.Equal(t, "NUS T-shirt", product.Name)
		assert.Equal(t, "nus-t-shirt", product.Slug)
		assert.True(t, decimal.RequireFromString("4.99").Equal(product.Price))
		assert.Equal(t, details.CategoryID, product.CategoryID)
		assert.Equal(t, 10, product.Quantity)
		assert.True(t, product.Shipping)
		assert.True(t, product.Photo.IsZero())

		events := product.PendingEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())
	})

	t.Run("rounds price to cents", func(t *testing.T) {
		details := validDetails()
		details.Price = decimal.RequireFromString("10.005")

		product, err := NewProduct(details)

		require.NoError(t, err)
		assert.Equal(t, "10.01", product.Price.StringFixed(2))
	})

	t.Run("validates details", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*ProductDetails)
			want   string
		}{
			{"missing name", func(d *ProductDetails) { d.Name = " " }, "Name is Required"},
			{"long name", func(d *ProductDetails) { d.Name = strings.Repeat("x", 201) }, "Name cannot exceed 200 characters"},
			{"missing description", func(d *ProductDetails) { d.Description = "" }, "Description is Required"},
			{"negative price", func(d *ProductDetails) { d.Price = decimal.NewFromInt(-1) }, "Price cannot be negative"},
			{"missing category", func(d *ProductDetails) { d.CategoryID = uuid.Nil }, "Category is Required"},
			{"negative quantity", func(d *ProductDetails) { d.Quantity = -1 }, "Quantity cannot be negative"},
			{"price above column range", func(d *ProductDetails) { d.Price = MaxPrice.Add(decimal.RequireFromString("0.01")) }, "Price cannot exceed 9999999999.99"},
			{"price rounding past the range", func(d *ProductDetails) { d.Price = decimal.RequireFromString("9999999999.995") }, "Price cannot exceed 9999999999.99"},
			{"quantity above integer range", func(d *ProductDetails) { d.Quantity = MaxQuantity + 1 }, "Quantity cannot exceed 2147483647"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				d := validDetails()
				tt.mutate(&d)

				_, err := NewProduct(d)

				require.Error(t, err)
				assert.Equal(t, tt.want, err.Error())
			})
		}
	})
}

func TestNewProduct_Limits(t *testing.T) {
	d := validDetails()
	d.Price = MaxPrice
	d.Quantity = MaxQuantity
	d.Name = strings.Repeat("a&", maxProductNameLength/2)

	product, err := NewProduct(d)
	require.NoError(t, err)

	assert.True(t, MaxPrice.Equal(product.Price))
	assert.Equal(t, MaxQuantity, product.Quantity)
	assert.LessOrEqual(t, utf8.RuneCountInString(product.Slug), maxProductSlugLength-slugSuffixLength)
	assert.False(t, strings.HasSuffix(product.Slug, "-"))

	product.DisambiguateSlug()
	assert.LessOrEqual(t, utf8.RuneCountInString(product.Slug), maxProductSlugLength)
}

func TestProduct_Update(t *testing.T) {
	product, err := NewProduct(validDetails())
	require.NoError(t, err)
	product.Category = &Category{Name: "Clothing"}
	product.ClearEvents()

	details := validDetails()
	details.Name = "NUS Hoodie"
	details.Quantity = 0

	require.NoError(t, product.Update(details))

	assert.Equal(t, "nus-hoodie", product.Slug)
	assert.Equal(t, 0, product.Quantity)
	assert.Nil(t, product.Category, "category association is dropped when the category changes")
	require.Len(t, product.PendingEvents(), 1)
	assert.Equal(t, EventTypeProductUpdated, product.PendingEvents()[0].EventType())
}

func TestProduct_DisambiguateSlug(t *testing.T) {
	product, err := NewProduct(validDetails())
	require.NoError(t, err)

	product.DisambiguateSlug()

	assert.True(t, strings.HasPrefix(product.Slug, "nus-t-shirt-"))
	assert.Len(t, product.Slug, len("nus-t-shirt-")+6)
}

func TestProduct_AttachPhoto(t *testing.T) {
	product, err := NewProduct(validDetails())
	require.NoError(t, err)

	prev := product.AttachPhoto(Photo{Key: PhotoKeyFor(product.ID), ContentType: "image/jpeg", Size: 12})
	assert.Empty(t, prev)
	assert.False(t, product.Photo.IsZero())

	prev = product.AttachPhoto(Photo{Key: "other", ContentType: "image/png", Size: 3})
	assert.Equal(t, PhotoKeyFor(product.ID), prev)
}

func TestValidatePhoto(t *testing.T) {
	assert.NoError(t, ValidatePhoto(1024, "image/jpeg"))
	assert.NoError(t, ValidatePhoto(MaxPhotoSize, "IMAGE/PNG"))
	assert.EqualError(t, ValidatePhoto(MaxPhotoSize+1, "image/jpeg"), "photo is Required and should be less then 1mb")
	assert.EqualError(t, ValidatePhoto(0, "image/jpeg"), "photo is Required and should be less then 1mb")
	assert.EqualError(t, ValidatePhoto(10, "application/pdf"), "photo must be an image")
}
