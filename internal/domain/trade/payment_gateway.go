package trade

import (
	"context"

	"github.com/shopspring/decimal"
)

// SaleRequest asks the gateway to charge a tokenized payment method
type SaleRequest struct {
	Amount decimal.Decimal
	// Nonce is the single-use payment method token produced by the client SDK
	Nonce string
	// OrderRef identifies the charge on the gateway side
	OrderRef string
}

// SaleResult is the gateway's answer to a sale
type SaleResult struct {
	Success       bool
	TransactionID string
	Status        string
	Message       string
	Amount        decimal.Decimal
	Gateway       string
}

// Document converts the result into the JSON document stored on the order
func (r *SaleResult) Document() PaymentDocument {
	return PaymentDocument{
		"success": r.Success,
		"message": r.Message,
		"gateway": r.Gateway,
		"transaction": map[string]any{
			"id":     r.TransactionID,
			"status": r.Status,
			"amount": r.Amount.StringFixed(2),
		},
	}
}

// PaymentGateway is the external payment processor
type PaymentGateway interface {
	Name() string
	// ClientToken issues a token the client SDK uses to render the drop-in UI
	ClientToken(ctx context.Context) (string, error)
	// Sale charges the nonce. A declined charge is a result with Success=false, not an error.
	Sale(ctx context.Context, req SaleRequest) (*SaleResult, error)
}
