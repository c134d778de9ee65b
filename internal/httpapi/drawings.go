package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/plancad/internal/app"
	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/drawing"
)

const defaultRunsLimit = 50

func (h *Handler) listDrawings(w http.ResponseWriter, r *http.Request) {
	list, err := h.Drawings.List(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, r, list)
}

func (h *Handler) createDrawing(w http.ResponseWriter, r *http.Request) {
	var req app.CreateDrawingRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	d, err := h.Drawings.Create(r.Context(), req)
	if err != nil {
		fail(w, r, err)
		return
	}
	created(w, r, d)
}

func (h *Handler) getDrawing(w http.ResponseWriter, r *http.Request) {
	d, err := h.Drawings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, r, d)
}

func (h *Handler) deleteDrawing(w http.ResponseWriter, r *http.Request) {
	if err := h.Drawings.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	ok(w, r, nil)
}

func (h *Handler) clearDrawing(w http.ResponseWriter, r *http.Request) {
	d, err := h.Drawings.Clear(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, r, d)
}

func (h *Handler) exportDrawing(w http.ResponseWriter, r *http.Request) {
	format, err := formatParam(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	data, err := h.Drawings.Export(r.Context(), chi.URLParam(r, "id"), format)
	if err != nil {
		fail(w, r, err)
		return
	}

	contentType := "application/json"
	if format == drawing.FormatYAML {
		contentType = "application/yaml"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, chi.URLParam(r, "id"), format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// importDrawing takes the raw snapshot as the body; ?format=yaml selects YAML.
func (h *Handler) importDrawing(w http.ResponseWriter, r *http.Request) {
	format, err := formatParam(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		fail(w, r, fmt.Errorf("%w: %v", errBadBody, err))
		return
	}
	d, err := h.Drawings.Import(r.Context(), data, format)
	if err != nil {
		fail(w, r, err)
		return
	}
	created(w, r, d)
}

func (h *Handler) listRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			fail(w, r, fmt.Errorf("%w: limit must be a non-negative integer", domain.ErrInvalidInput))
			return
		}
		limit = n
	}
	runs, err := h.Scripts.History(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, r, runs)
}

func (h *Handler) addLayer(w http.ResponseWriter, r *http.Request) {
	var req app.AddLayerRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	layer, err := h.Drawings.AddLayer(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		fail(w, r, err)
		return
	}
	created(w, r, layer)
}

func (h *Handler) assignToLayer(w http.ResponseWriter, r *http.Request) {
	var req app.AssignLayerRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	d, err := h.Drawings.AssignToLayer(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "layerID"), req)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, r, d)
}

func (h *Handler) setLayerFlags(w http.ResponseWriter, r *http.Request) {
	var req app.LayerFlagsRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	d, err := h.Drawings.SetLayerFlags(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "layerID"), req)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, r, d)
}

func (h *Handler) saveTemplate(w http.ResponseWriter, r *http.Request) {
	var req app.SaveTemplateRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	tmpl, err := h.Drawings.SaveTemplate(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		fail(w, r, err)
		return
	}
	created(w, r, tmpl)
}

func (h *Handler) placeTemplate(w http.ResponseWriter, r *http.Request) {
	var req app.PlaceTemplateRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	resp, err := h.Drawings.PlaceTemplate(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "templateID"), req)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, r, resp)
}

func formatParam(r *http.Request) (drawing.Format, error) {
	f, err := drawing.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return f, nil
}
