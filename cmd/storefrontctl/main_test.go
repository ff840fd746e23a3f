package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/persistence"
)

type cliFixture struct {
	db    *gorm.DB
	store *cache.InMemoryStore
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	identity.PasswordCost = bcrypt.MinCost

	db, err := gorm.Open(sqlite.Open(":memory:"), persistence.GormConfig(gormlogger.Default.LogMode(gormlogger.Silent)))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(persistence.Models()...))
	return &cliFixture{db: db, store: cache.NewInMemoryStore()}
}

// run executes the CLI against the fixture database
func (f *cliFixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	connect := func(context.Context, bool) (*services, error) {
		return newServices(f.db, f.store, time.Minute, zap.NewNop(), nil), nil
	}
	var out bytes.Buffer
	cmd := newRootCmd(connect)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (f *cliFixture) registerUser(t *testing.T, email string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(identity.Registration{
		Name: "Jane", Email: email, Password: "secret123",
		Phone: "555-0100", Address: "1 Main St", Answer: "blue",
	})
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormUserRepository(f.db).Create(context.Background(), user))
	return user
}

func TestUserPromoteDemote(t *testing.T) {
	f := newCLIFixture(t)
	f.registerUser(t, "jane@example.com")
	users := persistence.NewGormUserRepository(f.db)

	out, err := f.run(t, "user", "promote", "Jane@Example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "jane@example.com")

	user, err := users.FindByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleAdmin, user.Role)

	_, err = f.run(t, "user", "demote", "jane@example.com")
	require.NoError(t, err)
	user, err = users.FindByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleCustomer, user.Role)

	_, err = f.run(t, "user", "promote", "nobody@example.com")
	assert.Error(t, err)

	out, err = f.run(t, "user", "count")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestCategorySeed(t *testing.T) {
	f := newCLIFixture(t)

	out, err := f.run(t, "category", "seed", "Books", "Home Office")
	require.NoError(t, err)
	assert.Contains(t, out, "home-office")

	out, err = f.run(t, "category", "seed", "books", "Toys")
	require.NoError(t, err)
	assert.Contains(t, out, "exists")
	assert.Contains(t, out, "toys")

	out, err = f.run(t, "category", "list")
	require.NoError(t, err)
	for _, slug := range []string{"books", "home-office", "toys"} {
		assert.Contains(t, out, slug)
	}

	_, err = f.run(t, "category", "seed")
	assert.Error(t, err, "seed requires at least one name")
}

func TestCategorySeedEvictsSharedListing(t *testing.T) {
	f := newCLIFixture(t)
	ctx := context.Background()

	_, err := f.run(t, "category", "seed", "Books")
	require.NoError(t, err)
	out, err := f.run(t, "category", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "toys")

	var cached []catalogapp.CategoryResponse
	hit, err := f.store.Get(ctx, catalogapp.CategoriesCacheKey, &cached)
	require.NoError(t, err)
	require.True(t, hit, "listing is cached in the shared store")
	require.Len(t, cached, 1)

	_, err = f.run(t, "category", "seed", "Toys")
	require.NoError(t, err)

	hit, err = f.store.Get(ctx, catalogapp.CategoriesCacheKey, &cached)
	require.NoError(t, err)
	assert.False(t, hit, "seeding evicts the cached listing")

	out, err = f.run(t, "category", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "toys")
}

func TestOrdersListAndStatus(t *testing.T) {
	f := newCLIFixture(t)
	buyer := f.registerUser(t, "jane@example.com")

	order, err := trade.NewOrder(buyer.ID, []trade.OrderItem{{ProductID: uuid.New(), Name: "Mug", Quantity: 1}}, nil)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormOrderRepository(f.db).Create(context.Background(), order))

	out, err := f.run(t, "orders", "list", "--page-size", "10")
	require.NoError(t, err)
	assert.Contains(t, out, order.ID.String())
	assert.Contains(t, out, "Not Process")
	assert.Contains(t, out, "1 orders")

	out, err = f.run(t, "orders", "status", order.ID.String(), "Shipped")
	require.NoError(t, err)
	assert.Contains(t, out, "Shipped")

	_, err = f.run(t, "orders", "status", order.ID.String(), "Lost")
	assert.Error(t, err)

	_, err = f.run(t, "orders", "status", "not-a-uuid", "Shipped")
	assert.Error(t, err)
}

func TestArgumentValidation(t *testing.T) {
	f := newCLIFixture(t)
	for _, args := range [][]string{
		{"user", "promote"},
		{"user", "count", "extra"},
		{"orders", "status", "only-id"},
	} {
		_, err := f.run(t, args...)
		assert.Error(t, err, args)
	}
}
