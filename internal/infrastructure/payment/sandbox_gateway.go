package payment

import (
	"context"
	"encoding/base64"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/trade"
)

// Nonces understood by the sandbox gateway. They match the fixed test nonces
// of the Braintree client SDKs.
const (
	SandboxValidNonce    = "fake-valid-nonce"
	SandboxDeclinePrefix = "fake-processor-declined"
)

// GatewayNameSandbox identifies sandbox charges in stored payment documents
const GatewayNameSandbox = "sandbox"

// SandboxGateway is an in-process gateway for development and tests.
// Only the valid test nonce succeeds.
type SandboxGateway struct {
	sales atomic.Int64
}

// NewSandboxGateway creates a new sandbox gateway
func NewSandboxGateway() *SandboxGateway {
	return &SandboxGateway{}
}

// Name implements trade.PaymentGateway
func (g *SandboxGateway) Name() string {
	return GatewayNameSandbox
}

// ClientToken implements trade.PaymentGateway
func (g *SandboxGateway) ClientToken(_ context.Context) (string, error) {
	raw := `{"version":2,"environment":"sandbox","authorizationFingerprint":"` + uuid.NewString() + `"}`
	return base64.StdEncoding.EncodeToString([]byte(raw)), nil
}

// Sale implements trade.PaymentGateway
func (g *SandboxGateway) Sale(_ context.Context, req trade.SaleRequest) (*trade.SaleResult, error) {
	g.sales.Add(1)
	result := &trade.SaleResult{Gateway: GatewayNameSandbox, Amount: req.Amount}

	switch {
	case req.Nonce == SandboxValidNonce:
		result.Success = true
		result.TransactionID = strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		result.Status = "SUBMITTED_FOR_SETTLEMENT"
		result.Message = "Transaction submitted for settlement"
	case strings.HasPrefix(req.Nonce, SandboxDeclinePrefix):
		result.Status = "PROCESSOR_DECLINED"
		result.Message = "Do Not Honor"
	default:
		result.Status = "VALIDATION"
		result.Message = "Unknown or expired payment method nonce"
	}
	return result, nil
}

// Sales returns how many sales were attempted
func (g *SandboxGateway) Sales() int64 {
	return g.sales.Load()
}

var _ trade.PaymentGateway = (*SandboxGateway)(nil)
