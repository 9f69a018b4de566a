package fertilization

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers the ingestion endpoints. {table} is "plans" or
// "actuals"; both collections share one handler set.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Route("/fertilization/{table}", func(r chi.Router) {
		r.Get("/records", h.handleList)
		r.Post("/batches", h.handleBatch)
		r.Put("/records/{id}", h.handleUpdate)
		r.Delete("/records/{id}", h.handleDelete)
		r.Delete("/plantations/{code}", h.handleDeleteByPlantation)
		r.Delete("/records", h.handleDeleteAll)
	})
}
