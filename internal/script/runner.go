package script

import (
	"context"

	"github.com/alexanderramin/plancad/internal/command"
	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/pipeline"
	"github.com/samber/lo"
)

// Outcome is the result of executing a script against a drawing. On failure
// Drawing is nil and Logs holds whatever the script printed before failing.
type Outcome struct {
	Drawing    *domain.Drawing
	Logs       []string
	CreatedIDs []string
	Commands   []command.Command
}

// Runner executes scripts end to end: policy check, interpretation, command
// validation, then pipeline application.
type Runner struct {
	interp    Interpreter
	validator *command.Validator
	opts      []pipeline.Option
}

// NewRunner wires a Starlark interpreter to the command validator.
func NewRunner(v *command.Validator, opts ...pipeline.Option) *Runner {
	return &Runner{interp: NewStarlark(v), validator: v, opts: opts}
}

// NewRunnerWith uses a custom interpreter.
func NewRunnerWith(interp Interpreter, v *command.Validator, opts ...pipeline.Option) *Runner {
	return &Runner{interp: interp, validator: v, opts: opts}
}

// Execute runs src against d. d is never modified. Every error returned is a
// *domain.ScriptError.
func (r *Runner) Execute(ctx context.Context, d *domain.Drawing, src string, env Env) (*Outcome, error) {
	out := &Outcome{}
	if err := CheckPolicy(src); err != nil {
		return out, err
	}

	if env.ShapeIDs == nil {
		env.ShapeIDs = lo.Map(d.Shapes, func(s domain.Shape, _ int) string { return s.ID })
	}

	prog, err := r.interp.Run(ctx, src, env)
	if prog != nil {
		out.Logs = prog.Logs
	}
	if err != nil {
		return out, err
	}
	out.Commands = prog.Commands

	if r.validator != nil {
		if err := r.validator.Validate(prog.Commands); err != nil {
			return out, err
		}
	}

	res, err := pipeline.Apply(d, prog.Commands, r.opts...)
	if err != nil {
		return out, err
	}
	out.Drawing = res.Drawing
	out.CreatedIDs = res.CreatedIDs
	return out, nil
}

// Check runs the policy and a compile-only pass over src.
func (r *Runner) Check(src string, env Env) error {
	if err := CheckPolicy(src); err != nil {
		return err
	}
	return r.interp.Check(src, env)
}
