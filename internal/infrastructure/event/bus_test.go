package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gym/backend/internal/domain/contract"
	"github.com/gym/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New())}
}

type testHandler struct {
	eventTypes []string
	err        error
	panicMsg   string
	mu         sync.Mutex
	handled    []shared.DomainEvent
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	h.handled = append(h.handled, event)
	h.mu.Unlock()
	if h.panicMsg != "" {
		panic(h.panicMsg)
	}
	return h.err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func startedBus(t *testing.T, logger *zap.Logger) *InMemoryEventBus {
	t.Helper()
	bus := NewInMemoryEventBus(logger)
	require.NoError(t, bus.Start(context.Background()))
	return bus
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("routes by type", func(t *testing.T) {
		bus := startedBus(t, zap.NewNop())
		created := newTestHandler(contract.EventTypeContractCreated)
		cancelled := newTestHandler(contract.EventTypeContractCancelled)
		bus.Subscribe(created)
		bus.Subscribe(cancelled)

		require.NoError(t, bus.Publish(ctx,
			newTestEvent(contract.EventTypeContractCreated),
			newTestEvent(contract.EventTypeContractCreated),
		))

		assert.Equal(t, 2, created.count())
		assert.Zero(t, cancelled.count())
	})

	t.Run("wildcard sees everything", func(t *testing.T) {
		bus := startedBus(t, zap.NewNop())
		all := newTestHandler()
		bus.Subscribe(all)

		require.NoError(t, bus.Publish(ctx, newTestEvent("A"), newTestEvent("B")))
		assert.Equal(t, 2, all.count())
	})

	t.Run("explicit types override handler types", func(t *testing.T) {
		bus := startedBus(t, zap.NewNop())
		h := newTestHandler("A")
		bus.Subscribe(h, "B")

		require.NoError(t, bus.Publish(ctx, newTestEvent("A"), newTestEvent("B")))
		assert.Equal(t, 1, h.count())
	})

	t.Run("failing and panicking handlers do not stop delivery", func(t *testing.T) {
		core, logs := observer.New(zapcore.ErrorLevel)
		bus := startedBus(t, zap.New(core))

		failing := newTestHandler("A")
		failing.err = errors.New("boom")
		panicking := newTestHandler("A")
		panicking.panicMsg = "kaboom"
		healthy := newTestHandler("A")
		bus.Subscribe(failing)
		bus.Subscribe(panicking)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, newTestEvent("A")))

		assert.Equal(t, 1, healthy.count())
		assert.Equal(t, 2, logs.FilterMessage("Event handler failed").Len())
	})

	t.Run("dropped when not running", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		bus := NewInMemoryEventBus(zap.New(core))
		h := newTestHandler()
		bus.Subscribe(h)

		require.NoError(t, bus.Publish(ctx, newTestEvent("A")))
		assert.Zero(t, h.count())
		assert.Equal(t, 1, logs.FilterMessage("Event bus not running, dropping events").Len())
	})
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	bus := startedBus(t, zap.NewNop())
	h := newTestHandler("A")
	bus.Subscribe(h)

	require.NoError(t, bus.Publish(ctx, newTestEvent("A")))
	bus.Unsubscribe(h)
	require.NoError(t, bus.Publish(ctx, newTestEvent("A")))

	assert.Equal(t, 1, h.count())
}

func TestInMemoryEventBus_Stop(t *testing.T) {
	bus := startedBus(t, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, bus.Stop(ctx))

	h := newTestHandler()
	bus.Subscribe(h)
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("A")))
	assert.Zero(t, h.count())
}

func TestLoggingHandler(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	bus := startedBus(t, zap.New(core))
	bus.Subscribe(NewLoggingHandler(zap.New(core)))

	c, err := contract.NewContract(uuid.New(), uuid.New(), contract.Terms{
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 1, 0),
		Price:     decimal.NewFromInt(45),
	}, time.Now())
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), c.GetDomainEvents()...))

	entries := logs.FilterMessage("Domain event").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, contract.EventTypeContractCreated, fields["event_type"])
	assert.Equal(t, c.ClientID.String(), fields["client_id"])
	assert.Equal(t, "45", fields["price"])
}
