package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultSlowQueryThreshold marks spans of queries slower than this.
const DefaultSlowQueryThreshold = 200 * time.Millisecond

type queryStartKey struct{}

// InstrumentDB registers otelgorm so every query becomes a child span of the
// request, without bound variables. Spans of slow queries are flagged.
func InstrumentDB(db *gorm.DB, dbName string, slowThreshold time.Duration, logger *zap.Logger) error {
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowQueryThreshold
	}
	if err := db.Use(otelgorm.NewPlugin(
		otelgorm.WithDBName(dbName),
		otelgorm.WithoutQueryVariables(),
	)); err != nil {
		return err
	}

	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) { markSlowQuery(tx, slowThreshold) }

	cb := db.Callback()
	err := errors.Join(
		cb.Create().Before("gorm:create").Register("storefront:before_create", before),
		cb.Query().Before("gorm:query").Register("storefront:before_query", before),
		cb.Update().Before("gorm:update").Register("storefront:before_update", before),
		cb.Delete().Before("gorm:delete").Register("storefront:before_delete", before),
		cb.Row().Before("gorm:row").Register("storefront:before_row", before),
		cb.Raw().Before("gorm:raw").Register("storefront:before_raw", before),
		cb.Create().After("gorm:create").Register("storefront:slow_create", after),
		cb.Query().After("gorm:query").Register("storefront:slow_query", after),
		cb.Update().After("gorm:update").Register("storefront:slow_update", after),
		cb.Delete().After("gorm:delete").Register("storefront:slow_delete", after),
		cb.Row().After("gorm:row").Register("storefront:slow_row", after),
		cb.Raw().After("gorm:raw").Register("storefront:slow_raw", after),
	)
	if err != nil {
		return err
	}

	logger.Info("Database tracing enabled", zap.Duration("slow_query_threshold", slowThreshold))
	return nil
}

func markSlowQuery(tx *gorm.DB, threshold time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > threshold {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
}

// RegisterPoolMetrics exposes sql.DB pool statistics as observable gauges,
// read at each collection cycle.
func RegisterPoolMetrics(meter metric.Meter, sqlDB *sql.DB) (metric.Registration, error) {
	conns, err := meter.Int64ObservableGauge("db.client.connections",
		metric.WithDescription("Database connections by pool state"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return nil, err
	}
	maxConns, err := meter.Int64ObservableGauge("db.client.connections.max",
		metric.WithDescription("Maximum open database connections"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return nil, err
	}
	waits, err := meter.Int64ObservableCounter("db.client.connections.wait_count",
		metric.WithDescription("Connections waited for"),
	)
	if err != nil {
		return nil, err
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(conns, int64(stats.Idle), metric.WithAttributes(AttrDBPoolState.String("idle")))
		o.ObserveInt64(conns, int64(stats.InUse), metric.WithAttributes(AttrDBPoolState.String("in_use")))
		o.ObserveInt64(maxConns, int64(stats.MaxOpenConnections))
		o.ObserveInt64(waits, stats.WaitCount)
		return nil
	}, conns, maxConns, waits)
}
