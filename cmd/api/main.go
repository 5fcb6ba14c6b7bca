package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"electrician-pro/internal/config"
	"electrician-pro/internal/observability"
	"electrician-pro/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configFile := flag.String("config", "", "optional config file (yaml, json or toml)")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load(config.New(), *configFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Logger
	if err := observability.InitLogger(cfg.Log); err != nil {
		return err
	}
	defer observability.SyncLogger()

	// Tracing, metrics and log export
	shutdown, err := initTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			observability.Logger.Error("telemetry shutdown", zap.Error(err))
		}
	}()

	// Router
	router := server.NewRouter(cfg)

	return server.Run(ctx, cfg.HTTP, router)
}
