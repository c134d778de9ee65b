package intelligence

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/plancad/internal/command"
	"github.com/alexanderramin/plancad/internal/domain"
)

const scriptDraftPreamble = `You write scripts for plancad, a floor plan sketching tool.
Scripts are Starlark (a small Python dialect). Every drawing operation is a
function on the predeclared cad module. Coordinates are (x, y) tuples in the
drawing's units. Drawing functions return the new shape's id as a string.

Rules:
1. Use only the cad functions listed below, plus Starlark built-ins (range, len, str, print).
2. Never import anything. There is no os, sys, open, exec or eval.
3. Keep the script short and deterministic.

Output ONLY a JSON object with these fields:
- script: the complete script as a string
- explanation: one sentence describing what the script draws

Available functions:
`

const scriptRepairPreamble = `The plancad script below failed to check. Return a corrected version.
Keep the intent of the original. Output ONLY a JSON object with fields
"script" and "explanation".`

// buildSystemPrompt renders the catalog as the list of functions the model
// may call.
func buildSystemPrompt(specs []command.Spec) string {
	var b strings.Builder
	b.WriteString(scriptDraftPreamble)
	for _, s := range specs {
		params := make([]string, 0, len(s.Parameters))
		for _, p := range s.Parameters {
			name := p.Name
			if !p.Required {
				name += "?"
			}
			params = append(params, name)
		}
		fmt.Fprintf(&b, "- cad.%s(%s): %s\n", s.Function, strings.Join(params, ", "), s.Description)
		for _, ex := range s.Examples {
			fmt.Fprintf(&b, "    %s\n", ex)
		}
	}
	return b.String()
}

func buildDraftPrompt(req DraftRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Request: %s\n", strings.TrimSpace(req.Description))
	units := req.Units
	if units == "" {
		units = domain.UnitsMillimeter
	}
	fmt.Fprintf(&b, "Units: %s\n", units)
	if len(req.Variables) > 0 {
		names := make([]string, 0, len(req.Variables))
		for name := range req.Variables {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintf(&b, "Predeclared variables: %s\n", strings.Join(names, ", "))
	}
	return b.String()
}

func buildRepairPrompt(script string, failure *domain.ScriptError) string {
	var b strings.Builder
	b.WriteString(scriptRepairPreamble)
	b.WriteString("\n\nScript:\n")
	b.WriteString(script)
	fmt.Fprintf(&b, "\n\nError (%s", failure.Kind)
	if failure.Line > 0 {
		fmt.Fprintf(&b, ", line %d", failure.Line)
	}
	fmt.Fprintf(&b, "): %s\n", failure.Message)
	if failure.Details != "" {
		fmt.Fprintf(&b, "%s\n", failure.Details)
	}
	return b.String()
}
