package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
)

const providerShutdownTimeout = 10 * time.Second

// OTLPTarget is the collector and service identity shared by traces,
// metrics and logs.
type OTLPTarget struct {
	Endpoint       string
	Insecure       bool
	ServiceName    string
	ServiceVersion string
}

// Resource describes the service on every exported signal
func (t OTLPTarget) Resource() (*resource.Resource, error) {
	version := t.ServiceVersion
	if version == "" {
		version = "dev"
	}
	attrs := []attribute.KeyValue{
		semconv.ServiceName(t.ServiceName),
		semconv.ServiceVersion(version),
	}
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(semconv.SchemaURL, attrs...))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// shutdownProvider bounds a provider shutdown and logs the outcome
func shutdownProvider(ctx context.Context, signal string, logger *zap.Logger, shutdown func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, providerShutdownTimeout)
	defer cancel()

	if err := shutdown(ctx); err != nil {
		logger.Error("Telemetry provider shutdown failed", zap.String("signal", signal), zap.Error(err))
		return fmt.Errorf("failed to shutdown %s provider: %w", signal, err)
	}
	logger.Info("Telemetry provider shut down", zap.String("signal", signal))
	return nil
}
