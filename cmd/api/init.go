package main

import (
	"context"

	"electrician-pro/internal/config"
	"electrician-pro/internal/observability"
	"electrician-pro/internal/ohmslaw"
)

// initTelemetry starts the exporters and then registers the domain metric
// instruments against the installed meter provider. Add new domain
// InitMetrics calls here as the project grows.
func initTelemetry(ctx context.Context, cfg config.TelemetryConfig) (func(context.Context) error, error) {
	shutdown, err := observability.Setup(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := ohmslaw.InitMetrics(); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	return shutdown, nil
}
