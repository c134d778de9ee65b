// Package script turns script text into pipeline commands. Scripts are
// Starlark programs calling functions on a predeclared cad module; each run
// gets its own interpreter thread and module instance.
package script

import (
	"context"

	"github.com/alexanderramin/plancad/internal/command"
)

// Env is the per-run context visible to a script.
type Env struct {
	// Variables are predeclared as globals.
	Variables map[string]any
	// Selected is exposed as cad.selected.
	Selected []string
	// ShapeIDs lists the shapes already in the drawing, exposed as cad.shape_ids.
	ShapeIDs []string
}

// Program is the output of a successful script run: the commands in call
// order and the log lines the script emitted.
type Program struct {
	Commands []command.Command
	Logs     []string
}

// Interpreter evaluates scripts. Implementations must not share mutable
// state between runs.
type Interpreter interface {
	Run(ctx context.Context, src string, env Env) (*Program, error)
	Check(src string, env Env) error
}
