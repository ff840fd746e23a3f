// Package payment implements trade.PaymentGateway for Braintree and an in-process sandbox.
package payment

import (
	"errors"
	"time"
)

const (
	braintreeProductionURL = "https://payments.braintree-api.com/graphql"
	braintreeSandboxURL    = "https://payments.sandbox.braintree-api.com/graphql"
	braintreeAPIVersion    = "2019-01-01"
)

// BraintreeConfig contains credentials for the Braintree GraphQL API
type BraintreeConfig struct {
	// Environment is "sandbox" or "production"
	Environment string
	MerchantID  string
	PublicKey   string
	PrivateKey  string
	Timeout     time.Duration
	// Endpoint overrides the environment's GraphQL URL
	Endpoint string
}

// Errors for configuration validation
var (
	ErrBraintreeMissingMerchantID  = errors.New("braintree: missing merchant ID")
	ErrBraintreeMissingPublicKey   = errors.New("braintree: missing public key")
	ErrBraintreeMissingPrivateKey  = errors.New("braintree: missing private key")
	ErrBraintreeInvalidEnvironment = errors.New("braintree: environment must be sandbox or production")
)

// Validate validates the configuration
func (c *BraintreeConfig) Validate() error {
	if c.MerchantID == "" {
		return ErrBraintreeMissingMerchantID
	}
	if c.PublicKey == "" {
		return ErrBraintreeMissingPublicKey
	}
	if c.PrivateKey == "" {
		return ErrBraintreeMissingPrivateKey
	}
	switch c.Environment {
	case "":
		c.Environment = "sandbox"
	case "sandbox", "production":
	default:
		return ErrBraintreeInvalidEnvironment
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}

// URL returns the GraphQL endpoint for the configured environment
func (c *BraintreeConfig) URL() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	if c.Environment == "production" {
		return braintreeProductionURL
	}
	return braintreeSandboxURL
}
