package app

import (
	"time"

	"github.com/alexanderramin/plancad/internal/domain"
)

type CreateDrawingRequest struct {
	Name  string       `json:"name"`
	Units domain.Units `json:"units,omitempty"`
}

// DrawingSummary is the listing view of a stored drawing.
type DrawingSummary struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Units      domain.Units `json:"units"`
	ShapeCount int          `json:"shapeCount"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// ScriptRunView is one entry of a drawing's execution history.
type ScriptRunView struct {
	ID         string           `json:"id"`
	Script     string           `json:"script"`
	Success    bool             `json:"success"`
	ErrorType  domain.ErrorKind `json:"errorType,omitempty"`
	ErrorLine  int              `json:"errorLine,omitempty"`
	Message    string           `json:"message,omitempty"`
	CreatedIDs int              `json:"createdIds"`
	DurationMs int64            `json:"durationMs"`
	CreatedAt  time.Time        `json:"createdAt"`
}

type AddLayerRequest struct {
	Name string `json:"name"`
}

type AssignLayerRequest struct {
	ShapeIDs []string `json:"shapeIds"`
}

type LayerFlagsRequest struct {
	Visible bool `json:"visible"`
	Locked  bool `json:"locked"`
}

type SaveTemplateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	ShapeIDs    []string `json:"shapeIds"`
}

type PlaceTemplateRequest struct {
	At domain.Point `json:"at"`
}

// PlaceTemplateResponse carries the updated drawing and the ids of the
// shapes the placement created.
type PlaceTemplateResponse struct {
	Drawing    *domain.Drawing `json:"drawing"`
	CreatedIDs []string        `json:"createdIds"`
}
