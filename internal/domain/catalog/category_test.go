package catalog

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("derives slug from trimmed name", func(t *testing.T) {
		category, err := NewCategory("  Home & Garden ")
		require.NoError(t, err)

		assert.Equal(t, "Home & Garden", category.Name)
		assert.Equal(t, "home-and-garden", category.Slug)
		assert.NotEmpty(t, category.ID)
	})

	t.Run("publishes CategoryCreated event", func(t *testing.T) {
		category, err := NewCategory("Books")
		require.NoError(t, err)

		events := category.PendingEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCategoryCreated, events[0].EventType())
		assert.Equal(t, category.ID, events[0].AggregateID())
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := NewCategory("   ")
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.Equal(t, "Name is required", err.Error())
	})

	t.Run("rejects long names", func(t *testing.T) {
		_, err := NewCategory(strings.Repeat("a", 101))
		assert.Error(t, err)
	})

	t.Run("rejects names without letters or digits", func(t *testing.T) {
		_, err := NewCategory("!!!")
		assert.Error(t, err)
	})

	t.Run("slug fits its column at the name limit", func(t *testing.T) {
		category, err := NewCategory(strings.Repeat("a&", maxCategoryNameLength/2))
		require.NoError(t, err)

		assert.LessOrEqual(t, utf8.RuneCountInString(category.Slug), maxCategorySlugLength)
		assert.True(t, strings.HasPrefix(category.Slug, "a-and-a-and-"))
		assert.False(t, strings.HasSuffix(category.Slug, "-"))
		assert.Equal(t, category.Slug, CategorySlugFor(category.Name))
	})
}

func TestCategory_Rename(t *testing.T) {
	category, err := NewCategory("Electronics")
	require.NoError(t, err)
	category.ClearEvents()
	before := category.UpdatedAt

	require.NoError(t, category.Rename("Consumer Electronics"))

	assert.Equal(t, "Consumer Electronics", category.Name)
	assert.Equal(t, "consumer-electronics", category.Slug)
	assert.False(t, category.UpdatedAt.Before(before))
	require.Len(t, category.PendingEvents(), 1)
	assert.Equal(t, EventTypeCategoryUpdated, category.PendingEvents()[0].EventType())

	assert.Error(t, category.Rename(""))
	assert.Equal(t, "Consumer Electronics", category.Name)
}
