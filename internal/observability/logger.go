package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"electrician-pro/internal/config"
)

var Logger = zap.NewNop()

// InitLogger replaces Logger with a JSON production logger, or a console
// logger when cfg.Development is set.
func InitLogger(cfg config.LogConfig) error {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	Logger = logger
	return nil
}

func SyncLogger() {
	_ = Logger.Sync()
}

// LoggerWithTrace returns a child logger enriched with trace_id and span_id
// fields from the active OTel span in ctx.
//
// ctx is also attached as a zap.Any("context", ctx) field. The otelzap bridge
// uses any context.Context field as the context for log.Logger.Emit, so the
// exported OTLP record carries the native TraceID and SpanID. Without it the
// bridge emits with context.Background() and log to trace correlation breaks.
//
// The string trace_id / span_id fields keep stdout JSON greppable.
func LoggerWithTrace(ctx context.Context) *zap.Logger {
	span := trace.SpanContextFromContext(ctx)

	if !span.IsValid() {
		return Logger
	}

	return Logger.With(
		zap.Any("context", ctx),
		zap.String("trace_id", span.TraceID().String()),
		zap.String("span_id", span.SpanID().String()),
	)
}
