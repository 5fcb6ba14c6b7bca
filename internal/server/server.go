package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.uber.org/zap"

	"electrician-pro/internal/config"
	"electrician-pro/internal/observability"
)

// Run serves handler on cfg.Addr until ctx is cancelled, then shuts down
// gracefully within cfg.ShutdownTimeout.
func Run(ctx context.Context, cfg config.HTTPConfig, handler http.Handler) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}
	return Serve(ctx, cfg, ln, handler)
}

// Serve is Run on an existing listener.
func Serve(ctx context.Context, cfg config.HTTPConfig, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		observability.Logger.Info("server started", zap.String("addr", ln.Addr().String()))

		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	observability.Logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return <-errCh
}
