package domain

import "time"

// ScriptRun records one script execution against a stored drawing.
type ScriptRun struct {
	ID         string
	DrawingID  string
	Script     string
	Success    bool
	ErrorType  ErrorKind
	ErrorLine  int
	Message    string
	CreatedIDs int
	Duration   time.Duration
	CreatedAt  time.Time
}
