package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
)

func placeOrder(t *testing.T, db *gorm.DB, buyerID uuid.UUID, productID uuid.UUID, qty int) *trade.Order {
	t.Helper()
	order, err := trade.NewOrder(buyerID, []trade.OrderItem{
		{ProductID: productID, Name: "Book", Price: decimal.RequireFromString("12.50"), Quantity: qty},
	}, trade.PaymentDocument{"success": true, "transaction": map[string]any{"id": "tx-1"}})
	require.NoError(t, err)
	require.NoError(t, NewGormOrderRepository(db).Create(context.Background(), order))
	return order
}

func TestGormOrderRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	buyer := seedUser(t, db, "buyer@example.com")
	cat := seedCategory(t, db, "Books")
	p := seedProduct(t, db, "Book", "d", "12.50", cat.ID)
	order := placeOrder(t, db, buyer.ID, p.ID, 2)

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusNotProcess, found.Status)
	require.Len(t, found.Items, 1)
	assert.Equal(t, 2, found.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("25").Equal(found.Amount))
	require.NotNil(t, found.Buyer)
	assert.Equal(t, "Test User", found.Buyer.Name)
	assert.Equal(t, true, found.Payment["success"])

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOrderRepository_UpdateStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	buyer := seedUser(t, db, "buyer@example.com")
	cat := seedCategory(t, db, "Books")
	p := seedProduct(t, db, "Book", "d", "12.50", cat.ID)
	order := placeOrder(t, db, buyer.ID, p.ID, 1)

	require.NoError(t, order.UpdateStatus(trade.OrderStatusShipped))
	require.NoError(t, repo.UpdateStatus(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusShipped, found.Status)

	ghost := &trade.Order{}
	ghost.ID = uuid.New()
	assert.ErrorIs(t, repo.UpdateStatus(ctx, ghost), shared.ErrNotFound)
}

func TestGormOrderRepository_FindAllFiltersAndOrders(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	cat := seedCategory(t, db, "Books")
	p := seedProduct(t, db, "Book", "d", "12.50", cat.ID)

	first := placeOrder(t, db, alice.ID, p.ID, 1)
	time.Sleep(5 * time.Millisecond)
	second := placeOrder(t, db, alice.ID, p.ID, 1)
	placeOrder(t, db, bob.ID, p.ID, 1)

	mine, err := repo.FindAll(ctx, shared.Filter{Filters: map[string]any{trade.FilterBuyerID: alice.ID}})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID, "newest first")
	assert.Equal(t, first.ID, mine[1].ID)

	require.NoError(t, first.UpdateStatus(trade.OrderStatusCancelled))
	require.NoError(t, repo.UpdateStatus(ctx, first))

	cancelled, err := repo.Count(ctx, shared.Filter{Filters: map[string]any{trade.FilterStatus: trade.OrderStatusCancelled}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), cancelled)

	page, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	total, err := repo.Count(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}
