// Package httpapi exposes the script and drawing services over HTTP. Every
// endpoint answers with the contract.Response envelope.
package httpapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alexanderramin/plancad/internal/service"
)

// Handler holds the services behind the API. Drafts may be nil when
// drafting is disabled.
type Handler struct {
	Scripts  service.ScriptService
	Drawings service.DrawingService
	Catalog  service.CatalogService
	Drafts   service.DraftService
}

// NewRouter mounts every route on a chi router.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		middleware.Logger,
	)

	r.HandleFunc("/health", HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/commands", h.listCommands)

		r.Route("/scripts", func(r chi.Router) {
			r.Post("/execute", h.executeScript)
			r.Post("/validate", h.validateScript)
			r.Post("/draft", h.draftScript)
		})

		r.Route("/drawings", func(r chi.Router) {
			r.Get("/", h.listDrawings)
			r.Post("/", h.createDrawing)
			r.Post("/import", h.importDrawing)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getDrawing)
				r.Delete("/", h.deleteDrawing)
				r.Post("/clear", h.clearDrawing)
				r.Get("/export", h.exportDrawing)
				r.Get("/runs", h.listRuns)

				r.Post("/layers", h.addLayer)
				r.Patch("/layers/{layerID}", h.setLayerFlags)
				r.Put("/layers/{layerID}/shapes", h.assignToLayer)

				r.Post("/templates", h.saveTemplate)
				r.Post("/templates/{templateID}/place", h.placeTemplate)
			})
		})
	})

	return r
}
