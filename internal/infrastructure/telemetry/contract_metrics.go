package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

const contractMeterName = "gym-backend/contracts"

// ContractMetrics holds the business instruments for the contract lifecycle
type ContractMetrics struct {
	lifecycleEvents *Counter
	sweepExpired    *Counter
	sweepFailed     *Counter
	sweepDuration   *Histogram
}

// NewContractMetrics registers the contract instruments on mp's meter
func NewContractMetrics(mp *MeterProvider) (*ContractMetrics, error) {
	meter := mp.Meter(contractMeterName)

	lifecycle, err := NewCounter(meter,
		"contract_lifecycle_events_total",
		"Committed contract state transitions by event type",
		"{event}",
	)
	if err != nil {
		return nil, err
	}
	expired, err := NewCounter(meter,
		"contract_expiry_sweep_expired_total",
		"Contracts moved to vencido by the expiry sweep",
		"{contract}",
	)
	if err != nil {
		return nil, err
	}
	failed, err := NewCounter(meter,
		"contract_expiry_sweep_failed_total",
		"Contracts the expiry sweep could not expire",
		"{contract}",
	)
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        "contract_expiry_sweep_duration_seconds",
		Description: "Duration of one expiry sweep",
		Unit:        "s",
		Boundaries:  []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30, 60, 300},
	})
	if err != nil {
		return nil, err
	}

	return &ContractMetrics{
		lifecycleEvents: lifecycle,
		sweepExpired:    expired,
		sweepFailed:     failed,
		sweepDuration:   duration,
	}, nil
}

// RecordLifecycleEvent counts one committed lifecycle event
func (m *ContractMetrics) RecordLifecycleEvent(ctx context.Context, eventType string) {
	m.lifecycleEvents.Inc(ctx, AttrEventType.String(eventType))
}

// RecordSweep records the outcome of one expiry sweep
func (m *ContractMetrics) RecordSweep(ctx context.Context, expired, failed int, d time.Duration, sweepErr error) {
	outcome := "ok"
	if sweepErr != nil {
		outcome = "error"
	}
	if expired > 0 {
		m.sweepExpired.Add(ctx, int64(expired))
	}
	if failed > 0 {
		m.sweepFailed.Add(ctx, int64(failed))
	}
	m.sweepDuration.RecordDuration(ctx, d, attribute.String(string(AttrOutcome), outcome))
}
