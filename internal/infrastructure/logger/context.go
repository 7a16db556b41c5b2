package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type ctxKey int

const (
	ctxKeyLogger ctxKey = iota
	ctxKeyRequestID
)

// WithContext attaches l to ctx
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger, l)
}

// FromContext returns the request logger carried by ctx, tagged with the
// active span. A context without one yields a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	l, _ := ctx.Value(ctxKeyLogger).(*zap.Logger)
	if l == nil {
		l = zap.NewNop()
	}
	return WithTraceContext(ctx, l)
}

// WithRequestID records requestID in ctx and attaches a logger carrying it
func WithRequestID(ctx context.Context, l *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	l = l.With(zap.String("request_id", requestID))
	ctx = context.WithValue(ctx, ctxKeyRequestID, requestID)
	return WithContext(ctx, l), l
}

// GetRequestID returns the id stored by WithRequestID, or ""
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}

// WithTraceContext tags l with trace_id and span_id when ctx carries a
// valid span. Services call it so lifecycle logs join the request trace.
func WithTraceContext(ctx context.Context, l *zap.Logger) *zap.Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return l
	}
	return l.With(
		zap.Stringer("trace_id", sc.TraceID()),
		zap.Stringer("span_id", sc.SpanID()),
	)
}
