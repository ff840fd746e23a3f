package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Order", uuid.New())}
}

type failingHandler struct {
	err   error
	panic bool
}

func (h *failingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.panic {
		panic("boom")
	}
	return h.err
}

func (h *failingHandler) EventTypes() []string { return nil }

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	handler := newMockHandler("OrderPlaced")
	bus.Subscribe(handler)

	event := newTestEvent("OrderPlaced")
	require.NoError(t, bus.Publish(context.Background(), event))

	require.Len(t, handler.handled, 1)
	assert.Equal(t, event.EventID(), handler.handled[0].EventID())
}

func TestInMemoryEventBus_Publish_MultipleEvents(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	handler := newMockHandler()
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), newTestEvent("OrderPlaced"), newTestEvent("OrderStatusChanged"))
	require.NoError(t, err)
	assert.Len(t, handler.handled, 2)
}

func TestInMemoryEventBus_Subscribe_ExplicitTypesOverrideHandler(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	handler := newMockHandler("OrderPlaced")
	bus.Subscribe(handler, "ProductCreated")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("OrderPlaced"), newTestEvent("ProductCreated")))

	require.Len(t, handler.handled, 1)
	assert.Equal(t, "ProductCreated", handler.handled[0].EventType())
}

func TestInMemoryEventBus_Publish_HandlerFailureIsolated(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))

	bus.Subscribe(&failingHandler{err: errors.New("downstream unavailable")})
	bus.Subscribe(&failingHandler{panic: true})
	after := newMockHandler()
	bus.Subscribe(after)

	err := bus.Publish(context.Background(), newTestEvent("OrderPlaced"))
	require.NoError(t, err)

	assert.Len(t, after.handled, 1)
	assert.Equal(t, 2, logs.FilterMessage("handler failed to process event").Len())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	handler := newMockHandler("OrderPlaced")
	unsubscribe := bus.Subscribe(handler)
	unsubscribe()

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("OrderPlaced")))
	assert.Empty(t, handler.handled)
}

func TestAuditLogHandler_Handle(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := NewAuditLogHandler(zap.New(core))

	ctx := logger.WithRequestID(context.Background(), "req-1")
	ctx = logger.WithUserID(ctx, "user-1")
	event := newTestEvent("OrderPlaced")

	require.NoError(t, handler.Handle(ctx, event))

	entries := logs.FilterMessage("domain event").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "OrderPlaced", fields["event_type"])
	assert.Equal(t, event.AggregateID().String(), fields["aggregate_id"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "user-1", fields["actor_id"])
	assert.Nil(t, handler.EventTypes())
}
