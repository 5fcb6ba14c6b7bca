package observability

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"electrician-pro/internal/handlers"
)

// RecordFailure records err on the span, increments counter for opName and
// logs with trace context. It writes no response.
func RecordFailure(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName, msg string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)

	counter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", opName)))

	logger.Error(msg,
		zap.String("operation", opName),
		zap.Error(err),
		zap.String("request_id", RequestIDFromContext(ctx)),
	)
}

// RecordError is RecordFailure followed by a JSON error response. The request
// id travels in the X-Request-ID header only.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName, msg string, err error, status int, w http.ResponseWriter) {
	RecordFailure(ctx, span, logger, counter, opName, msg, err)
	handlers.WriteError(w, status, msg)
}
