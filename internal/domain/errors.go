package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDrawingNotFound indicates no drawing exists for the requested id.
	ErrDrawingNotFound = errors.New("drawing not found")

	// ErrInvalidSnapshot indicates an exported drawing could not be decoded
	// or violates the aggregate invariants.
	ErrInvalidSnapshot = errors.New("invalid drawing snapshot")

	// ErrLayerNotFound indicates no layer exists for the requested id.
	ErrLayerNotFound = errors.New("layer not found")

	// ErrTemplateNotFound indicates no template exists for the requested id.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrShapeNotFound indicates a referenced shape id is not in the drawing.
	ErrShapeNotFound = errors.New("shape not found")

	// ErrInvalidInput indicates a request argument failed validation.
	ErrInvalidInput = errors.New("invalid input")
)

type ErrorKind string

const (
	ErrorSyntax     ErrorKind = "syntax"
	ErrorRuntime    ErrorKind = "runtime"
	ErrorValidation ErrorKind = "validation"
)

// ScriptError is the structured failure of a script execution. Line and
// Column are 1-based; zero means unknown.
type ScriptError struct {
	Kind    ErrorKind `json:"type" yaml:"type"`
	Message string    `json:"message" yaml:"message"`
	Line    int       `json:"line,omitempty" yaml:"line,omitempty"`
	Column  int       `json:"column,omitempty" yaml:"column,omitempty"`
	Details string    `json:"details,omitempty" yaml:"details,omitempty"`
}

func (e *ScriptError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(" error")
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&b, ":%d", e.Column)
		}
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// NewValidationError builds a validation ScriptError.
func NewValidationError(line int, format string, args ...any) *ScriptError {
	return &ScriptError{Kind: ErrorValidation, Message: fmt.Sprintf(format, args...), Line: line}
}

// NewRuntimeError builds a runtime ScriptError.
func NewRuntimeError(line int, format string, args ...any) *ScriptError {
	return &ScriptError{Kind: ErrorRuntime, Message: fmt.Sprintf(format, args...), Line: line}
}

// AsScriptError extracts a *ScriptError from err, if present.
func AsScriptError(err error) (*ScriptError, bool) {
	var se *ScriptError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
