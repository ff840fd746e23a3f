package trade

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

// MaxItemQuantity bounds a single order line, which is stored as INTEGER
const MaxItemQuantity = math.MaxInt32

// OrderItem is a snapshot of a purchased product at checkout time
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(200);not null"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity  int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal is price times quantity
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// PaymentDocument is the gateway's payment result, stored as JSON
type PaymentDocument map[string]any

// Value implements driver.Valuer
func (p PaymentDocument) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (p *PaymentDocument) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*p = PaymentDocument{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported payment document type %T", value)
	}
	doc := PaymentDocument{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	*p = doc
	return nil
}

// Order is a paid checkout of a buyer's cart
type Order struct {
	shared.AggregateBase
	BuyerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Buyer   *identity.User  `gorm:"foreignKey:BuyerID"`
	Items   []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment PaymentDocument `gorm:"type:jsonb;not null"`
	Status  OrderStatus     `gorm:"type:varchar(20);not null;default:'Not Process';index"`
	Amount  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates an order in the initial status.
// Items with the same product are merged.
func NewOrder(buyerID uuid.UUID, items []OrderItem, payment PaymentDocument) (*Order, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewValidationError("Buyer is required")
	}
	if len(items) == 0 {
		return nil, shared.NewValidationError("Cart is empty")
	}

	order := &Order{
		AggregateBase: shared.NewAggregateBase(),
		BuyerID:       buyerID,
		Payment:       payment,
		Status:        OrderStatusNotProcess,
	}

	index := make(map[uuid.UUID]int, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, shared.NewValidationError("Item quantity must be positive")
		}
		if item.Quantity > MaxItemQuantity {
			return nil, shared.NewValidationError("Item quantity cannot exceed 2147483647")
		}
		if item.Price.IsNegative() {
			return nil, shared.NewValidationError("Item price cannot be negative")
		}
		if i, ok := index[item.ProductID]; ok {
			if order.Items[i].Quantity > MaxItemQuantity-item.Quantity {
				return nil, shared.NewValidationError("Item quantity cannot exceed 2147483647")
			}
			order.Items[i].Quantity += item.Quantity
			continue
		}
		item.ID = uuid.New()
		item.OrderID = order.ID
		index[item.ProductID] = len(order.Items)
		order.Items = append(order.Items, item)
	}
	order.Amount = TotalOf(order.Items)

	order.Raise(NewOrderPlacedEvent(order))
	return order, nil
}

// UpdateStatus moves the order to status
func (o *Order) UpdateStatus(status OrderStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("Invalid order status")
	}
	if !o.Status.CanTransitionTo(status) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot change status of an order that is %s", o.Status))
	}
	if o.Status == status {
		return nil
	}

	from := o.Status
	o.Status = status
	o.Touch()
	o.Raise(NewOrderStatusChangedEvent(o, from))
	return nil
}

// ItemCount returns the number of units in the order
func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// TotalOf sums the subtotals of items
func TotalOf(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
