package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

func TestGormProductRepository_FindPreloadsCategory(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	books := seedCategory(t, db, "Books")
	p := seedProduct(t, db, "Go Programming", "A book about Go", "29.99", books.ID)

	bySlug, err := repo.FindBySlug(ctx, "go-programming")
	require.NoError(t, err)
	assert.Equal(t, p.ID, bySlug.ID)
	require.NotNil(t, bySlug.Category)
	assert.Equal(t, "Books", bySlug.Category.Name)
	assert.True(t, decimal.RequireFromString("29.99").Equal(bySlug.Price))

	byID, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "go-programming", byID.Slug)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_SearchIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	cat := seedCategory(t, db, "Misc")
	seedProduct(t, db, "Laptop", "Portable COMPUTER", "999", cat.ID)
	seedProduct(t, db, "Mouse", "pointing device", "20", cat.ID)
	seedProduct(t, db, "100% Cotton Shirt", "soft", "15", cat.ID)

	found, err := repo.FindAll(ctx, shared.Filter{Search: "computer"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Laptop", found[0].Name)

	found, err = repo.FindAll(ctx, shared.Filter{Search: "MOUSE"})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = repo.FindAll(ctx, shared.Filter{Search: "%"})
	require.NoError(t, err)
	require.Len(t, found, 1, "wildcards match literally")
	assert.Equal(t, "100% Cotton Shirt", found[0].Name)
}

func TestGormProductRepository_FiltersAndPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	books := seedCategory(t, db, "Books")
	games := seedCategory(t, db, "Games")
	cheap := seedProduct(t, db, "Cheap Book", "d", "5", books.ID)
	seedProduct(t, db, "Mid Book", "d", "50", books.ID)
	seedProduct(t, db, "Pricey Game", "d", "500", games.ID)

	filter := shared.Filter{Filters: map[string]any{
		catalog.FilterCategoryIDs: []uuid.UUID{books.ID},
		catalog.FilterMinPrice:    decimal.NewFromInt(10),
		catalog.FilterMaxPrice:    decimal.NewFromInt(100),
	}}
	found, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Mid Book", found[0].Name)

	count, err := repo.Count(ctx, shared.Filter{Filters: map[string]any{
		catalog.FilterCategoryIDs: []uuid.UUID{books.ID},
		catalog.FilterExcludeID:   cheap.ID,
	}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	page, err := repo.FindAll(ctx, shared.Filter{Page: 2, PageSize: 2, OrderBy: "price", OrderDir: "asc"})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Pricey Game", page[0].Name)

	byCategory, err := repo.CountByCategory(ctx, books.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), byCategory)
}

func TestGormProductRepository_SlugUniqueness(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	cat := seedCategory(t, db, "Books")
	first := seedProduct(t, db, "Same Name", "d", "1", cat.ID)

	exists, err := repo.ExistsBySlug(ctx, "same-name", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsBySlug(ctx, "same-name", first.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	second, err := catalog.NewProduct(catalog.ProductDetails{
		Name: "Same Name", Description: "d", Price: decimal.NewFromInt(1), CategoryID: cat.ID,
	})
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Save(ctx, second), shared.ErrAlreadyExists)

	second.DisambiguateSlug()
	require.NoError(t, repo.Save(ctx, second))
}

func TestGormProductRepository_UpdatePhotoAndDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	cat := seedCategory(t, db, "Books")
	p := seedProduct(t, db, "Book", "d", "1", cat.ID)

	p.AttachPhoto(catalog.Photo{Key: catalog.PhotoKeyFor(p.ID), ContentType: "image/png", Size: 42})
	require.NoError(t, repo.Save(ctx, p))

	reloaded, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "image/png", reloaded.Photo.ContentType)
	assert.Equal(t, int64(42), reloaded.Photo.Size)

	ids, err := repo.FindByIDs(ctx, []uuid.UUID{p.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), shared.ErrNotFound)
}
