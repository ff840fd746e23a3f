package payment

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/trade"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// NewGateway builds the gateway selected by configuration
func NewGateway(cfg config.PaymentConfig, logger *zap.Logger) (trade.PaymentGateway, error) {
	switch cfg.Gateway {
	case "", config.PaymentGatewaySandbox:
		return NewSandboxGateway(), nil
	case config.PaymentGatewayBraintree:
		return NewBraintreeGateway(&BraintreeConfig{
			Environment: cfg.Environment,
			MerchantID:  cfg.MerchantID,
			PublicKey:   cfg.PublicKey,
			PrivateKey:  cfg.PrivateKey,
			Timeout:     cfg.Timeout,
		}, logger)
	}
	return nil, fmt.Errorf("unknown payment gateway %q", cfg.Gateway)
}
