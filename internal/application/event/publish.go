// Package event holds application-level helpers for domain event delivery.
package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shared"
)

// PublishPending publishes and clears the pending events of each aggregate.
// Events are published after the aggregate is persisted; a publish failure is
// logged and does not undo the write.
func PublishPending(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, aggregates ...shared.AggregateRoot) {
	for _, agg := range aggregates {
		events := agg.TakeEvents()
		if publisher == nil || len(events) == 0 {
			continue
		}
		if err := publisher.Publish(ctx, events...); err != nil && logger != nil {
			logger.Warn("Failed to publish domain events",
				zap.String("aggregate_id", agg.Identity().String()),
				zap.Error(err))
		}
	}
}
