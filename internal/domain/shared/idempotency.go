package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers the outcome of requests carrying an idempotency key
// so that client retries do not repeat side effects.
type IdempotencyStore interface {
	// Claim reserves key for ttl. It returns false if the key is already claimed or completed.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Complete records the result of a claimed key, keeping it for ttl.
	Complete(ctx context.Context, key, result string, ttl time.Duration) error

	// Result returns the recorded result, or "" with found=false while the key
	// is unknown or still in flight.
	Result(ctx context.Context, key string) (result string, found bool, err error)

	// Release drops a claim so the request can be retried.
	Release(ctx context.Context, key string) error

	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is how long a completed key is remembered. Default: 24 hours
	TTL time.Duration
	// ClaimTTL bounds how long an in-flight claim blocks retries. Default: 2 minutes
	ClaimTTL time.Duration
	Enabled  bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:      24 * time.Hour,
		ClaimTTL: 2 * time.Minute,
		Enabled:  true,
	}
}
