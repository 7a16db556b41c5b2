package event

import (
	"context"
	"sync"
	"testing"

	"github.com/gym/backend/internal/domain/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (r *countingRecorder) RecordLifecycleEvent(_ context.Context, eventType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = map[string]int{}
	}
	r.counts[eventType]++
}

func TestMetricsHandler_CountsContractEventsOnly(t *testing.T) {
	recorder := &countingRecorder{}
	bus := NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(NewMetricsHandler(recorder))
	require.NoError(t, bus.Start(context.Background()))

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent(contract.EventTypeContractCreated),
		newTestEvent(contract.EventTypeContractCreated),
		newTestEvent(contract.EventTypeContractCancelled),
		newTestEvent("ClientDeleted"),
	))

	assert.Equal(t, 2, recorder.counts[contract.EventTypeContractCreated])
	assert.Equal(t, 1, recorder.counts[contract.EventTypeContractCancelled])
	assert.NotContains(t, recorder.counts, "ClientDeleted")
}

func TestMetricsHandler_EventTypes(t *testing.T) {
	h := NewMetricsHandler(&countingRecorder{})
	assert.ElementsMatch(t, []string{
		contract.EventTypeContractCreated,
		contract.EventTypeContractCancelled,
		contract.EventTypeContractRenewed,
		contract.EventTypeContractExpired,
	}, h.EventTypes())
}
