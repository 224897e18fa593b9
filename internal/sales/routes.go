package sales

import "github.com/go-chi/chi/v5"

// MountRoutes registers sale routes under /sales.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.record)
	r.Get("/", h.list)
}
