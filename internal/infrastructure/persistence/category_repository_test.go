package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

func TestGormCategoryRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	toys := seedCategory(t, db, "Toys")
	seedCategory(t, db, "Books")

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Books", all[0].Name, "ordered by name")

	bySlug, err := repo.FindBySlug(ctx, "toys")
	require.NoError(t, err)
	assert.Equal(t, toys.ID, bySlug.ID)

	require.NoError(t, toys.Rename("Board Games"))
	require.NoError(t, repo.Save(ctx, toys))

	reloaded, err := repo.FindByID(ctx, toys.ID)
	require.NoError(t, err)
	assert.Equal(t, "board-games", reloaded.Slug)

	require.NoError(t, repo.Delete(ctx, toys.ID))
	_, err = repo.FindByID(ctx, toys.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
}

func TestGormCategoryRepository_ExistsBySlug(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()
	books := seedCategory(t, db, "Books")

	exists, err := repo.ExistsBySlug(ctx, "books", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsBySlug(ctx, "books", books.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormCategoryRepository_DuplicateName(t *testing.T) {
	db := newTestDB(t)
	seedCategory(t, db, "Books")

	dup, err := catalog.NewCategory("Books")
	require.NoError(t, err)
	err = NewGormCategoryRepository(db).Save(context.Background(), dup)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestGormCategoryRepository_DeleteReferencedCategory(t *testing.T) {
	db := newTestDB(t)
	books := seedCategory(t, db, "Books")
	seedProduct(t, db, "Go Book", "learn go", "10", books.ID)

	err := NewGormCategoryRepository(db).Delete(context.Background(), books.ID)
	assert.Error(t, err)
}
