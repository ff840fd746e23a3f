package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/metric"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/trade"
)

// ErrMeterNil is returned when an instrument set is built without a meter.
var ErrMeterNil = errors.New("telemetry: meter is nil")

// Payment outcomes recorded on storefront.payments.
const (
	PaymentOutcomeApproved = "approved"
	PaymentOutcomeDeclined = "declined"
	PaymentOutcomeError    = "error"
)

// StoreMetrics records storefront business counters. It subscribes to the
// event bus for order and registration events; checkout reports payment
// outcomes directly.
type StoreMetrics struct {
	ordersPlaced     *Counter
	orderAmount      *Histogram
	orderTransitions *Counter
	payments         *Counter
	usersRegistered  *Counter
}

func NewStoreMetrics(meter metric.Meter) (*StoreMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	m := &StoreMetrics{}
	var err error

	if m.ordersPlaced, err = NewCounter(meter, "storefront.orders.placed", "Orders placed through checkout", "{order}"); err != nil {
		return nil, err
	}
	if m.orderAmount, err = NewHistogram(meter, HistogramOpts{
		Name:        "storefront.orders.amount",
		Description: "Charged amount per order",
		Unit:        "{currency}",
		Boundaries:  OrderAmountBuckets,
	}); err != nil {
		return nil, err
	}
	if m.orderTransitions, err = NewCounter(meter, "storefront.orders.status_changes", "Order status transitions by target status", "{change}"); err != nil {
		return nil, err
	}
	if m.payments, err = NewCounter(meter, "storefront.payments", "Payment attempts by gateway and outcome", "{payment}"); err != nil {
		return nil, err
	}
	if m.usersRegistered, err = NewCounter(meter, "storefront.users.registered", "Customer sign-ups", "{user}"); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *StoreMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *trade.OrderPlacedEvent:
		m.ordersPlaced.Inc(ctx)
		m.orderAmount.Record(ctx, e.Amount.InexactFloat64())
	case *trade.OrderStatusChangedEvent:
		m.orderTransitions.Inc(ctx, AttrOrderStatus.String(string(e.To)))
	case *identity.UserRegisteredEvent:
		m.usersRegistered.Inc(ctx)
	}
	return nil
}

func (m *StoreMetrics) EventTypes() []string {
	return []string{
		trade.EventTypeOrderPlaced,
		trade.EventTypeOrderStatusChanged,
		identity.EventTypeUserRegistered,
	}
}

// RecordPayment counts one gateway sale attempt.
func (m *StoreMetrics) RecordPayment(ctx context.Context, gateway, outcome string) {
	m.payments.Inc(ctx, AttrPaymentGateway.String(gateway), AttrPaymentOutcome.String(outcome))
}

var _ shared.EventHandler = (*StoreMetrics)(nil)
