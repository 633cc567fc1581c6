package session

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all session endpoints onto the given router
// under the /sessions prefix.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Delete("/", h.Delete)
			r.Post("/press", h.Press)
			r.Post("/sequence", h.Sequence)
		})
	})
}
