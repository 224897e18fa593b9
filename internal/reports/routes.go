package reports

import "github.com/go-chi/chi/v5"

// MountRoutes registers the report endpoints on the root router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/reports", h.show)
	r.Get("/download-report", h.download)
}
