package event

import (
	"context"

	"github.com/gym/backend/internal/domain/contract"
	"github.com/gym/backend/internal/domain/shared"
)

// LifecycleRecorder counts committed contract lifecycle events
type LifecycleRecorder interface {
	RecordLifecycleEvent(ctx context.Context, eventType string)
}

// MetricsHandler forwards contract events to a LifecycleRecorder
type MetricsHandler struct {
	recorder LifecycleRecorder
}

// NewMetricsHandler creates a MetricsHandler
func NewMetricsHandler(recorder LifecycleRecorder) *MetricsHandler {
	return &MetricsHandler{recorder: recorder}
}

// Handle records the event type
func (h *MetricsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.recorder.RecordLifecycleEvent(ctx, event.EventType())
	return nil
}

// EventTypes lists the contract lifecycle events
func (h *MetricsHandler) EventTypes() []string {
	return []string{
		contract.EventTypeContractCreated,
		contract.EventTypeContractCancelled,
		contract.EventTypeContractRenewed,
		contract.EventTypeContractExpired,
	}
}

var _ shared.EventHandler = (*MetricsHandler)(nil)
