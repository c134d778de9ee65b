package app

import "github.com/alexanderramin/plancad/internal/domain"

// DraftScriptRequest asks for a script from a plain-language description.
// When DrawingID is set its units are used.
type DraftScriptRequest struct {
	Description string         `json:"description"`
	DrawingID   string         `json:"drawingId,omitempty"`
	Variables   map[string]any `json:"variables,omitempty"`
}

type DraftScriptResponse struct {
	Script      string              `json:"script"`
	Explanation string              `json:"explanation,omitempty"`
	Valid       bool                `json:"valid"`
	Error       *domain.ScriptError `json:"error,omitempty"`
	Attempts    int                 `json:"attempts"`
	Confidence  float64             `json:"confidence"`
}
