package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// Backends bundles the stores handed to the application services
type Backends struct {
	// Client is nil when the in-memory fallback is in use
	Client      *redis.Client
	Catalog     Store
	Idempotency shared.IdempotencyStore
}

// Close releases the idempotency janitor and the Redis connection
func (b *Backends) Close() error {
	var firstErr error
	if b.Idempotency != nil {
		firstErr = b.Idempotency.Close()
	}
	if b.Client != nil {
		if err := b.Client.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Factory creates stores based on configuration
type Factory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// in-memory stores. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create builds Redis backed stores when Redis is enabled and reachable,
// otherwise in-memory ones
func (f *Factory) Create(ctx context.Context) (*Backends, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory catalog cache and idempotency store")
		return f.inMemory(), nil
	}

	client, err := NewRedisClient(ctx, f.redisConfig)
	if err != nil {
		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("redis required but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory stores. "+
			"Idempotency keys will not be shared between instances.",
			zap.Error(err),
		)
		return f.inMemory(), nil
	}

	f.logger.Info("Using Redis stores", zap.String("addr", f.redisConfig.Addr()))
	return &Backends{
		Client:      client,
		Catalog:     NewRedisStore(client, "storefront:catalog:"),
		Idempotency: NewRedisIdempotencyStore(client, ""),
	}, nil
}

func (f *Factory) inMemory() *Backends {
	return &Backends{
		Catalog:     NewInMemoryStore(),
		Idempotency: NewInMemoryIdempotencyStore(DefaultCleanupInterval),
	}
}
