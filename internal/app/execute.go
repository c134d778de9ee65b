package app

import (
	"time"

	"github.com/alexanderramin/plancad/internal/domain"
)

// ExecuteRequest runs Script against a stored drawing (DrawingID), an inline
// snapshot (Drawing) or, when both are empty, a fresh scratch drawing.
type ExecuteRequest struct {
	Script    string          `json:"script"`
	DrawingID string          `json:"drawingId,omitempty"`
	Drawing   *domain.Drawing `json:"drawing,omitempty"`
	Variables map[string]any  `json:"variables,omitempty"`
	Selected  []string        `json:"selected,omitempty"`
	// DryRun leaves a stored drawing unchanged and records no history.
	DryRun bool `json:"dryRun,omitempty"`
}

func NewExecuteRequest(script string) ExecuteRequest {
	return ExecuteRequest{Script: script, Variables: map[string]any{}}
}

// ExecuteResponse reports a script execution. A script failure is a normal
// response with Success false and Error set; Drawing is then nil.
type ExecuteResponse struct {
	Success    bool                `json:"success"`
	Drawing    *domain.Drawing     `json:"drawing,omitempty"`
	Logs       []string            `json:"logs"`
	CreatedIDs []string            `json:"createdIds"`
	Error      *domain.ScriptError `json:"error,omitempty"`
	Duration   time.Duration       `json:"-"`
}

type ValidateRequest struct {
	Script    string         `json:"script"`
	Variables map[string]any `json:"variables,omitempty"`
}

type ValidateResponse struct {
	Valid bool                `json:"valid"`
	Error *domain.ScriptError `json:"error,omitempty"`
}
