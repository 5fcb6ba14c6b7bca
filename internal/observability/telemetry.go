package observability

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"electrician-pro/internal/config"
)

// Setup initialises tracing, metrics and log export when telemetry is
// enabled. The returned shutdown flushes every provider that was started and
// is safe to call when nothing was.
func Setup(ctx context.Context, cfg config.TelemetryConfig) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if !cfg.Enabled {
		Logger.Info("telemetry export disabled")
		return shutdown, nil
	}

	inits := []func(context.Context, string) (func(context.Context) error, error){
		InitTracing,
		InitMetrics,
		InitLogging,
	}
	for _, start := range inits {
		fn, err := start(ctx, cfg.ServiceName)
		if err != nil {
			return nil, errors.Join(err, shutdown(ctx))
		}
		shutdowns = append(shutdowns, fn)
	}

	Logger.Info("telemetry export enabled", zap.String("service", cfg.ServiceName))
	return shutdown, nil
}
