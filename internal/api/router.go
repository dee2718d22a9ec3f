// Package api exposes the joke service over HTTP using chi.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts every route on a fresh chi router.
func NewRouter(svc Service) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)
	r.Get("/db/health", h.DBHealth)

	r.Route("/jokes", func(r chi.Router) {
		r.Get("/retrieve", h.Retrieve)
		r.Get("/random", h.Random)
		r.Get("/live", h.Live)
		r.Get("/providers", h.Providers)
		r.Get("/categories", h.Categories)
		r.Get("/stats", h.Stats)
	})

	return r
}
