package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/trade"
)

// Gateway errors
var (
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")
	ErrGatewayRequestFailed = errors.New("payment gateway request failed")
)

// GatewayNameBraintree identifies Braintree charges in stored payment documents
const GatewayNameBraintree = "braintree"

// BraintreeGateway implements trade.PaymentGateway on the Braintree GraphQL API
type BraintreeGateway struct {
	config     *BraintreeConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewBraintreeGateway creates a new Braintree gateway
func NewBraintreeGateway(config *BraintreeConfig, logger *zap.Logger) (*BraintreeGateway, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BraintreeGateway{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger.Named("braintree"),
	}, nil
}

// Name implements trade.PaymentGateway
func (g *BraintreeGateway) Name() string {
	return GatewayNameBraintree
}

// ClientToken implements trade.PaymentGateway
func (g *BraintreeGateway) ClientToken(ctx context.Context) (string, error) {
	resp, err := g.do(ctx, graphQLRequest{
		Query:     createClientTokenMutation,
		Variables: map[string]any{"input": map[string]any{}},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Errors) > 0 {
		return "", fmt.Errorf("%w: %s", ErrGatewayRequestFailed, resp.Errors[0].Message)
	}

	var data clientTokenData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return "", fmt.Errorf("braintree: failed to decode client token: %w", err)
	}
	if data.CreateClientToken.ClientToken == "" {
		return "", fmt.Errorf("%w: empty client token", ErrGatewayRequestFailed)
	}
	return data.CreateClientToken.ClientToken, nil
}

// Sale implements trade.PaymentGateway. The charge is submitted for settlement.
func (g *BraintreeGateway) Sale(ctx context.Context, req trade.SaleRequest) (*trade.SaleResult, error) {
	transaction := map[string]any{
		"amount": req.Amount.StringFixed(2),
	}
	if req.OrderRef != "" {
		transaction["orderId"] = req.OrderRef
	}

	resp, err := g.do(ctx, graphQLRequest{
		Query: chargePaymentMethodMutation,
		Variables: map[string]any{
			"input": map[string]any{
				"paymentMethodId": req.Nonce,
				"transaction":     transaction,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	result := &trade.SaleResult{Gateway: GatewayNameBraintree, Amount: req.Amount}

	if len(resp.Errors) > 0 {
		first := resp.Errors[0]
		if !declineErrorClasses[first.Extensions.ErrorClass] {
			return nil, fmt.Errorf("%w: %s (%s)", ErrGatewayRequestFailed, first.Message, first.Extensions.ErrorClass)
		}
		g.logger.Info("Charge declined",
			zap.String("order_ref", req.OrderRef),
			zap.String("error_class", first.Extensions.ErrorClass),
			zap.String("legacy_code", first.Extensions.LegacyCode),
		)
		result.Message = first.Message
		result.Status = first.Extensions.ErrorClass
		return result, nil
	}

	var data chargeData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("braintree: failed to decode charge: %w", err)
	}
	if data.ChargePaymentMethod == nil || data.ChargePaymentMethod.Transaction == nil {
		return nil, fmt.Errorf("%w: charge returned no transaction", ErrGatewayRequestFailed)
	}

	tx := data.ChargePaymentMethod.Transaction
	result.TransactionID = tx.ID
	result.Status = tx.Status
	result.Success = successfulStatuses[tx.Status]
	result.Message = "Transaction " + strings.ToLower(strings.ReplaceAll(tx.Status, "_", " "))
	if !result.Success {
		g.logger.Info("Charge not successful",
			zap.String("order_ref", req.OrderRef),
			zap.String("transaction_id", tx.ID),
			zap.String("status", tx.Status),
		)
	}
	return result, nil
}

// do posts a GraphQL request and decodes the envelope
func (g *BraintreeGateway) do(ctx context.Context, body graphQLRequest) (*graphQLResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("braintree: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.URL(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("braintree: failed to create request: %w", err)
	}
	req.SetBasicAuth(g.config.PublicKey, g.config.PrivateKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Braintree-Version", braintreeAPIVersion)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("braintree: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp graphQLResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && len(errResp.Errors) > 0 {
			return nil, fmt.Errorf("%w: HTTP %d - %s", ErrGatewayRequestFailed, resp.StatusCode, errResp.Errors[0].Message)
		}
		return nil, fmt.Errorf("%w: HTTP %d", ErrGatewayRequestFailed, resp.StatusCode)
	}

	var out graphQLResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("braintree: failed to decode response: %w", err)
	}
	return &out, nil
}

var _ trade.PaymentGateway = (*BraintreeGateway)(nil)
