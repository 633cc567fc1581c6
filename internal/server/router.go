package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"neon-calculator/internal/handlers"
	"neon-calculator/internal/observability"
	"neon-calculator/internal/session"
)

// NewRouter wires the observability middleware, the probes and the
// calculator session API over store.
func NewRouter(store *session.Store) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.HTTPMetricsMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	session.NewHandler(store).RegisterRoutes(r)

	return r
}
