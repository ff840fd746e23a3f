package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&trade.Order{}).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.name ASC")
		}).
		Preload("Buyer")
}

// Create inserts the order and its items in one transaction
func (r *GormOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Buyer").Create(order).Error
	}))
}

// UpdateStatus persists the order's status
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, order *trade.Order) error {
	order.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(&trade.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":     order.Status,
			"updated_at": order.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an order with its items and buyer
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := r.query(ctx).First(&order, "orders.id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

// FindAll finds orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	orders := []trade.Order{}
	if err := r.applyFilter(r.query(ctx), filter).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts orders matching the filter, ignoring pagination
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&trade.Order{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Paged() {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	return query.Order("orders." + orderBy + " " + ValidateSortOrder(filter.OrderDir)).
		Order("orders.id DESC")
}

func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case trade.FilterStatus:
			query = query.Where("orders.status = ?", value)
		case trade.FilterBuyerID:
			query = query.Where("orders.buyer_id = ?", value)
		}
	}
	return query
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)
