package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/alexanderramin/plancad/internal/app"
	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/intelligence"
)

// executeData is the payload of a failed execution: what the script logged
// before it stopped.
type executeData struct {
	Logs       []string `json:"logs"`
	CreatedIDs []string `json:"createdIds"`
}

func (h *Handler) executeScript(w http.ResponseWriter, r *http.Request) {
	var req app.ExecuteRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	if strings.TrimSpace(req.Script) == "" {
		fail(w, r, fmt.Errorf("%w: script is required", domain.ErrInvalidInput))
		return
	}

	resp, err := h.Scripts.Execute(r.Context(), req)
	if err != nil {
		fail(w, r, err)
		return
	}
	if !resp.Success {
		scriptFailure(w, r, resp.Error, executeData{Logs: resp.Logs, CreatedIDs: resp.CreatedIDs})
		return
	}
	ok(w, r, resp)
}

func (h *Handler) validateScript(w http.ResponseWriter, r *http.Request) {
	var req app.ValidateRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	if strings.TrimSpace(req.Script) == "" {
		fail(w, r, fmt.Errorf("%w: script is required", domain.ErrInvalidInput))
		return
	}

	resp, err := h.Scripts.Validate(r.Context(), req)
	if err != nil {
		fail(w, r, err)
		return
	}
	if !resp.Valid {
		scriptFailure(w, r, resp.Error, resp)
		return
	}
	ok(w, r, resp)
}

func (h *Handler) draftScript(w http.ResponseWriter, r *http.Request) {
	if h.Drafts == nil {
		fail(w, r, intelligence.ErrDraftingDisabled)
		return
	}
	var req app.DraftScriptRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		fail(w, r, fmt.Errorf("%w: description is required", domain.ErrInvalidInput))
		return
	}

	resp, err := h.Drafts.Draft(r.Context(), req)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, r, resp)
}

func (h *Handler) listCommands(w http.ResponseWriter, r *http.Request) {
	ok(w, r, h.Catalog.Commands())
}
