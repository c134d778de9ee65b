package script

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/alexanderramin/plancad/internal/command"
	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/google/uuid"
	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Filename is the name scripts are compiled under; positions in errors and
// backtraces refer to it.
const Filename = "script"

const (
	DefaultTimeout  = 5 * time.Second
	DefaultMaxSteps = 1_000_000

	timeoutReason = "script execution timed out"
	stepsReason   = "script exceeded its execution step budget"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Starlark runs scripts with the go.starlark.net interpreter. The value is
// safe for concurrent use: every Run creates its own thread and cad module.
type Starlark struct {
	Validator *command.Validator
	NewID     func() string
	Timeout   time.Duration
	MaxSteps  uint64
}

// NewStarlark returns an interpreter with default limits that validates
// every command against v as it is recorded.
func NewStarlark(v *command.Validator) *Starlark {
	return &Starlark{
		Validator: v,
		NewID:     uuid.NewString,
		Timeout:   DefaultTimeout,
		MaxSteps:  DefaultMaxSteps,
	}
}

// Run executes src. On failure the returned Program still carries the log
// lines emitted before the error, and the error is a *domain.ScriptError.
func (s *Starlark) Run(ctx context.Context, src string, env Env) (*Program, error) {
	r := &recorder{interp: s}
	predeclared, err := r.predeclared(env)
	if err != nil {
		return &Program{}, err
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	thread := &starlark.Thread{
		Name:  "plancad",
		Print: func(_ *starlark.Thread, msg string) { r.logs = append(r.logs, msg) },
		Load: func(_ *starlark.Thread, module string) (starlark.StringDict, error) {
			return nil, fmt.Errorf("load(%q) is not allowed", module)
		},
		OnMaxSteps: func(th *starlark.Thread) { th.Cancel(stepsReason) },
	}
	if s.MaxSteps > 0 {
		thread.SetMaxExecutionSteps(s.MaxSteps)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(timeoutReason)
		case <-done:
		}
	}()

	if _, err := starlark.ExecFileOptions(fileOptions, thread, Filename, src, predeclared); err != nil {
		return &Program{Logs: r.logs}, toScriptError(err)
	}
	return &Program{Commands: r.cmds, Logs: r.logs}, nil
}

// Check parses and resolves src without running it.
func (s *Starlark) Check(src string, env Env) error {
	names := map[string]bool{"cad": true}
	for k := range env.Variables {
		names[k] = true
	}
	_, _, err := starlark.SourceProgramOptions(fileOptions, Filename, src, func(name string) bool { return names[name] })
	if err != nil {
		return toScriptError(err)
	}
	return nil
}

func (r *recorder) predeclared(env Env) (starlark.StringDict, error) {
	dict := starlark.StringDict{"cad": r.module(env)}
	for name, v := range env.Variables {
		if !identifier.MatchString(name) || name == "cad" {
			return nil, domain.NewValidationError(0, "invalid variable name %q", name)
		}
		sv, err := toStarlark(v)
		if err != nil {
			return nil, domain.NewValidationError(0, "variable %q: %v", name, err)
		}
		dict[name] = sv
	}
	return dict, nil
}

// toScriptError maps interpreter failures onto the three script error kinds.
func toScriptError(err error) error {
	if se, ok := domain.AsScriptError(err); ok {
		return se
	}

	var synErr syntax.Error
	if errors.As(err, &synErr) {
		return &domain.ScriptError{
			Kind:    domain.ErrorSyntax,
			Message: synErr.Msg,
			Line:    int(synErr.Pos.Line),
			Column:  int(synErr.Pos.Col),
			Details: synErr.Error(),
		}
	}

	var resolveErrs resolve.ErrorList
	if errors.As(err, &resolveErrs) && len(resolveErrs) > 0 {
		details := make([]string, len(resolveErrs))
		for i, e := range resolveErrs {
			details[i] = e.Error()
		}
		first := resolveErrs[0]
		return &domain.ScriptError{
			Kind:    domain.ErrorSyntax,
			Message: first.Msg,
			Line:    int(first.Pos.Line),
			Column:  int(first.Pos.Col),
			Details: strings.Join(details, "\n"),
		}
	}

	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		msg := evalErr.Msg
		switch {
		case strings.HasSuffix(msg, timeoutReason):
			msg = timeoutReason
		case strings.HasSuffix(msg, stepsReason):
			msg = stepsReason
		}
		line, col := stackPosition(evalErr.CallStack)
		return &domain.ScriptError{
			Kind:    domain.ErrorRuntime,
			Message: msg,
			Line:    line,
			Column:  col,
			Details: evalErr.Backtrace(),
		}
	}

	return &domain.ScriptError{Kind: domain.ErrorRuntime, Message: err.Error()}
}

// stackPosition returns the innermost position inside the script.
func stackPosition(stack starlark.CallStack) (int, int) {
	for i := len(stack) - 1; i >= 0; i-- {
		if pos := stack[i].Pos; pos.Filename() == Filename {
			return int(pos.Line), int(pos.Col)
		}
	}
	return 0, 0
}

// callerPosition returns the script position of the call to the running
// builtin.
func callerPosition(thread *starlark.Thread) (int, int) {
	for depth := 1; depth < thread.CallStackDepth(); depth++ {
		if pos := thread.CallFrame(depth).Pos; pos.Filename() == Filename {
			return int(pos.Line), int(pos.Col)
		}
	}
	return 0, 0
}
