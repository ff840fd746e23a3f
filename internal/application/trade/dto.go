package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/trade"
)

// CartItem references one unit of a product in the client's cart
type CartItem struct {
	ID string `json:"_id"`
}

// CheckoutRequest pays for a cart with a gateway nonce
type CheckoutRequest struct {
	Nonce string     `json:"nonce"`
	Cart  []CartItem `json:"cart"`
	// IdempotencyKey comes from the Idempotency-Key header
	IdempotencyKey string `json:"-"`
}

// CheckoutResult is returned by a successful checkout
type CheckoutResult struct {
	OK      bool      `json:"ok"`
	OrderID uuid.UUID `json:"orderId"`
}

// UpdateStatusRequest changes the status of an order
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderItemResponse is one order line
type OrderItemResponse struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// BuyerResponse identifies the buyer of an order
type BuyerResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID        uuid.UUID             `json:"id"`
	Items     []OrderItemResponse   `json:"products"`
	Payment   trade.PaymentDocument `json:"payment"`
	BuyerID   uuid.UUID             `json:"buyerId"`
	Buyer     *BuyerResponse        `json:"buyer,omitempty"`
	Status    string                `json:"status"`
	Amount    decimal.Decimal       `json:"amount"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// ToOrderResponse converts a domain order to a response
func ToOrderResponse(o *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	resp := OrderResponse{
		ID:        o.ID,
		Items:     items,
		Payment:   o.Payment,
		BuyerID:   o.BuyerID,
		Status:    o.Status.String(),
		Amount:    o.Amount,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	if o.Buyer != nil {
		resp.Buyer = &BuyerResponse{ID: o.Buyer.ID, Name: o.Buyer.Name}
	}
	return resp
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}
