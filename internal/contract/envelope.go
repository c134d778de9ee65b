package contract

import "github.com/alexanderramin/plancad/internal/domain"

// ErrorCode classifies an API failure. Script failures reuse the script
// error kinds.
type ErrorCode string

const (
	ErrCodeSyntax     ErrorCode = ErrorCode(domain.ErrorSyntax)
	ErrCodeRuntime    ErrorCode = ErrorCode(domain.ErrorRuntime)
	ErrCodeValidation ErrorCode = ErrorCode(domain.ErrorValidation)
	ErrCodeBadRequest ErrorCode = "bad_request"
	ErrCodeNotFound   ErrorCode = "not_found"
	ErrCodeDisabled   ErrorCode = "disabled"
	ErrCodeInternal   ErrorCode = "internal"
)

// APIError is the error body of a failed response.
type APIError struct {
	Type    ErrorCode `json:"type"`
	Message string    `json:"message"`
	Line    int       `json:"line,omitempty"`
	Column  int       `json:"column,omitempty"`
	Details string    `json:"details,omitempty"`
}

// Response is the envelope every API endpoint returns.
type Response struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Message string    `json:"message,omitempty"`
}

func OK(data any) Response {
	return Response{Success: true, Data: data}
}

func Fail(code ErrorCode, message string) Response {
	return Response{Success: false, Error: &APIError{Type: code, Message: message}}
}

// FromScriptError wraps a script failure, keeping its position.
func FromScriptError(se *domain.ScriptError) *APIError {
	return &APIError{
		Type:    ErrorCode(se.Kind),
		Message: se.Message,
		Line:    se.Line,
		Column:  se.Column,
		Details: se.Details,
	}
}
