package event

import (
	"context"

	"github.com/gym/backend/internal/domain/contract"
	"github.com/gym/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LoggingHandler writes one info line per event. It subscribes to everything.
type LoggingHandler struct {
	logger *zap.Logger
}

// NewLoggingHandler creates a LoggingHandler
func NewLoggingHandler(logger *zap.Logger) *LoggingHandler {
	return &LoggingHandler{logger: logger}
}

// Handle logs the event with its contract fields when it carries them
func (h *LoggingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	}

	switch e := event.(type) {
	case *contract.ContractCreatedEvent:
		fields = append(fields,
			zap.String("client_id", e.ClientID.String()),
			zap.String("plan_id", e.PlanID.String()),
			zap.String("price", e.Price.String()),
		)
		if e.PreviousContractID != nil {
			fields = append(fields, zap.String("previous_contract_id", e.PreviousContractID.String()))
		}
	case *contract.ContractCancelledEvent:
		fields = append(fields,
			zap.String("client_id", e.ClientID.String()),
			zap.String("plan_id", e.PlanID.String()),
			zap.String("reason", e.Reason),
		)
	case *contract.ContractRenewedEvent:
		fields = append(fields,
			zap.String("client_id", e.ClientID.String()),
			zap.String("new_contract_id", e.NewContractID.String()),
		)
	case *contract.ContractExpiredEvent:
		fields = append(fields,
			zap.String("client_id", e.ClientID.String()),
			zap.Time("end_date", e.EndDate),
		)
	}

	h.logger.Info("Domain event", fields...)
	return nil
}

// EventTypes returns nil so the handler receives all events
func (h *LoggingHandler) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*LoggingHandler)(nil)
