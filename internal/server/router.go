package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"electrician-pro/internal/config"
	"electrician-pro/internal/handlers"
	"electrician-pro/internal/observability"
	"electrician-pro/internal/ohmslaw"
)

func NewRouter(cfg config.Config) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	ohmslaw.RegisterRoutes(r, cfg.Solver)

	return r
}
