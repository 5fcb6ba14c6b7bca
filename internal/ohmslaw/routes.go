package ohmslaw

import (
	"github.com/go-chi/chi/v5"

	"electrician-pro/internal/config"
)

// RegisterRoutes mounts the series solver endpoints onto the given router
// under the /ohms-law prefix.
func RegisterRoutes(r chi.Router, cfg config.SolverConfig) {
	h := NewHandler(cfg)

	r.Route("/ohms-law/series", func(r chi.Router) {
		r.Post("/solve", h.Solve)
		r.Post("/validate", h.Validate)
	})
}
