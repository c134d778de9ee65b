package intelligence

import (
	"errors"

	"github.com/alexanderramin/plancad/internal/domain"
)

// ErrDraftingDisabled is returned when no LLM client is configured.
var ErrDraftingDisabled = errors.New("script drafting is disabled")

// DraftRequest describes the drawing change a user wants in plain language.
type DraftRequest struct {
	Description string
	Units       domain.Units
	// Variables are the names the drafted script may reference as globals.
	Variables map[string]any
	// Drawing is the drawing the script will run against. Drafts are dry-run
	// on it, or on an empty drawing when nil.
	Drawing *domain.Drawing
}

// ScriptDraft is a drafted script and the outcome of checking it. Valid is
// false when every repair attempt still failed; Error then holds the last
// check failure.
type ScriptDraft struct {
	Script      string              `json:"script"`
	Explanation string              `json:"explanation,omitempty"`
	Valid       bool                `json:"valid"`
	Error       *domain.ScriptError `json:"error,omitempty"`
	Attempts    int                 `json:"attempts"`
	Confidence  float64             `json:"confidence"`
}

// draftPayload is the JSON object the model is asked to return.
type draftPayload struct {
	Script      string `json:"script"`
	Explanation string `json:"explanation"`
}
