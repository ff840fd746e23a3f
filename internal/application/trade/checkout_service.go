package trade

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	appevent "github.com/storefront/backend/internal/application/event"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
)

// settleTimeout bounds the bookkeeping done after the gateway approved a sale.
// It runs detached from the request so a client disconnect cannot drop a paid order.
const settleTimeout = 10 * time.Second

var (
	ErrUnknownProduct     = shared.NewValidationError("Cart contains unknown products")
	ErrCheckoutInFlight   = shared.NewDomainError(shared.CodeConflict, "A checkout with this Idempotency-Key is already in progress")
	errGatewayUnavailable = &shared.DomainError{
		Code:    shared.CodeInvalidState,
		Message: "Payment gateway unavailable",
		Status:  http.StatusBadGateway,
	}
)

// PaymentRecorder counts gateway outcomes
type PaymentRecorder interface {
	RecordPayment(ctx context.Context, gateway, outcome string)
}

// CheckoutOption configures a CheckoutService
type CheckoutOption func(*CheckoutService)

// WithIdempotency deduplicates checkouts that carry an idempotency key
func WithIdempotency(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) CheckoutOption {
	return func(s *CheckoutService) {
		s.idempotency = store
		s.idempotencyCfg = cfg
	}
}

// WithPaymentRecorder reports every gateway outcome to recorder
func WithPaymentRecorder(recorder PaymentRecorder) CheckoutOption {
	return func(s *CheckoutService) {
		s.recorder = recorder
	}
}

// CheckoutService charges carts through the payment gateway and records orders
type CheckoutService struct {
	productRepo    catalog.ProductRepository
	orderRepo      trade.OrderRepository
	gateway        trade.PaymentGateway
	idempotency    shared.IdempotencyStore
	idempotencyCfg shared.IdempotencyConfig
	recorder       PaymentRecorder
	events         shared.EventPublisher
	logger         *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	productRepo catalog.ProductRepository,
	orderRepo trade.OrderRepository,
	gateway trade.PaymentGateway,
	events shared.EventPublisher,
	logger *zap.Logger,
	opts ...CheckoutOption,
) *CheckoutService {
	s := &CheckoutService{
		productRepo:    productRepo,
		orderRepo:      orderRepo,
		gateway:        gateway,
		idempotencyCfg: shared.DefaultIdempotencyConfig(),
		events:         events,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ClientToken returns a token for the client's payment UI
func (s *CheckoutService) ClientToken(ctx context.Context) (string, error) {
	token, err := s.gateway.ClientToken(ctx)
	if err != nil {
		s.logger.Error("Failed to issue client token", zap.String("gateway", s.gateway.Name()), zap.Error(err))
		return "", gatewayError(err)
	}
	return token, nil
}

// Checkout charges the cart and creates the order. Prices are taken from the
// catalog; every cart entry is one unit.
func (s *CheckoutService) Checkout(ctx context.Context, buyerID uuid.UUID, req CheckoutRequest) (_ *CheckoutResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "CheckoutService", "Checkout",
		attribute.Int("checkout.cart_size", len(req.Cart)))
	defer func() { telemetry.EndSpan(span, err) }()

	if strings.TrimSpace(req.Nonce) == "" {
		return nil, shared.NewValidationError("Payment nonce is required")
	}
	if len(req.Cart) == 0 {
		return nil, shared.NewValidationError("Cart is empty")
	}
	ids := make([]uuid.UUID, len(req.Cart))
	for i, entry := range req.Cart {
		id, err := uuid.Parse(entry.ID)
		if err != nil {
			return nil, ErrUnknownProduct
		}
		ids[i] = id
	}

	key := s.idempotencyKey(buyerID, req.IdempotencyKey)
	if key != "" {
		var previous *CheckoutResult
		var claimed bool
		previous, claimed, err = s.claim(ctx, key)
		if err != nil || previous != nil {
			return previous, err
		}
		if claimed {
			defer func() {
				if err != nil && !errors.Is(err, errKeepClaim) {
					if rerr := s.idempotency.Release(context.WithoutCancel(ctx), key); rerr != nil {
						s.logger.Warn("Failed to release idempotency key", zap.Error(rerr))
					}
				}
			}()
		}
	}

	order, err := s.buildOrder(ctx, buyerID, ids)
	if err != nil {
		return nil, err
	}

	sale, err := s.gateway.Sale(ctx, trade.SaleRequest{
		Amount:   order.Amount,
		Nonce:    req.Nonce,
		OrderRef: order.ID.String(),
	})
	if err != nil {
		s.record(ctx, telemetry.PaymentOutcomeError)
		s.logger.Error("Payment gateway sale failed", zap.String("order_id", order.ID.String()), zap.Error(err))
		return nil, gatewayError(err)
	}
	if !sale.Success {
		s.record(ctx, telemetry.PaymentOutcomeDeclined)
		s.logger.Info("Payment declined",
			zap.String("order_id", order.ID.String()),
			zap.String("status", sale.Status))
		return nil, declined(sale.Message)
	}
	s.record(ctx, telemetry.PaymentOutcomeApproved)

	settleCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), settleTimeout)
	defer cancel()

	order.Payment = sale.Document()
	if err := s.orderRepo.Create(settleCtx, order); err != nil {
		s.logger.Error("Charged but failed to record order",
			zap.String("order_id", order.ID.String()),
			zap.String("transaction_id", sale.TransactionID),
			zap.Error(err))
		// The charge went through; a retry with the same key must not charge again.
		return nil, fmt.Errorf("%w: create order: %w", errKeepClaim, err)
	}
	appevent.PublishPending(settleCtx, s.events, s.logger, order)

	result := &CheckoutResult{OK: true, OrderID: order.ID}
	if key != "" {
		s.complete(settleCtx, key, result)
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("buyer_id", buyerID.String()),
		zap.String("amount", order.Amount.StringFixed(2)))
	return result, nil
}

// buildOrder prices the cart from the catalog
func (s *CheckoutService) buildOrder(ctx context.Context, buyerID uuid.UUID, ids []uuid.UUID) (*trade.Order, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	products, err := s.productRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("load cart products: %w", err)
	}
	if len(products) != len(unique) {
		return nil, ErrUnknownProduct
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	items := make([]trade.OrderItem, 0, len(ids))
	for _, id := range ids {
		p := byID[id]
		items = append(items, trade.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  1,
		})
	}
	return trade.NewOrder(buyerID, items, nil)
}

// errKeepClaim marks failures after which the idempotency key stays claimed
var errKeepClaim = errors.New("idempotency key retained")

func (s *CheckoutService) idempotencyKey(buyerID uuid.UUID, key string) string {
	key = strings.TrimSpace(key)
	if key == "" || s.idempotency == nil || !s.idempotencyCfg.Enabled {
		return ""
	}
	return "checkout:" + buyerID.String() + ":" + key
}

// claim reserves key. It returns the stored result when the key already completed.
func (s *CheckoutService) claim(ctx context.Context, key string) (*CheckoutResult, bool, error) {
	if previous, err := s.stored(ctx, key); err != nil || previous != nil {
		return previous, false, err
	}

	claimed, err := s.idempotency.Claim(ctx, key, s.idempotencyCfg.ClaimTTL)
	if err != nil {
		// Without the store the request proceeds undeduplicated.
		s.logger.Warn("Idempotency claim failed", zap.Error(err))
		return nil, false, nil
	}
	if claimed {
		return nil, true, nil
	}

	// Completed between the lookup and the claim
	if previous, err := s.stored(ctx, key); err != nil || previous != nil {
		return previous, false, err
	}
	return nil, false, ErrCheckoutInFlight
}

func (s *CheckoutService) stored(ctx context.Context, key string) (*CheckoutResult, error) {
	raw, found, err := s.idempotency.Result(ctx, key)
	if err != nil {
		s.logger.Warn("Idempotency lookup failed", zap.Error(err))
		return nil, nil
	}
	if !found {
		return nil, nil
	}
	var result CheckoutResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("decode stored checkout result: %w", err)
	}
	s.logger.Info("Replaying checkout result", zap.String("order_id", result.OrderID.String()))
	return &result, nil
}

func (s *CheckoutService) complete(ctx context.Context, key string, result *CheckoutResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("Failed to encode checkout result", zap.Error(err))
		return
	}
	if err := s.idempotency.Complete(ctx, key, string(raw), s.idempotencyCfg.TTL); err != nil {
		s.logger.Warn("Failed to record idempotency result", zap.Error(err))
	}
}

func (s *CheckoutService) record(ctx context.Context, outcome string) {
	if s.recorder != nil {
		s.recorder.RecordPayment(ctx, s.gateway.Name(), outcome)
	}
}

func gatewayError(err error) error {
	e := *errGatewayUnavailable
	e.Err = err
	return &e
}

func declined(message string) error {
	if strings.TrimSpace(message) == "" {
		return shared.ErrPaymentDeclined
	}
	return shared.NewDomainError(shared.CodePaymentDeclined, message)
}
