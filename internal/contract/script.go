package contract

import "github.com/alexanderramin/plancad/internal/app"

type ExecuteRequest = app.ExecuteRequest

func NewExecuteRequest(script string) ExecuteRequest {
	return app.NewExecuteRequest(script)
}

type ExecuteResponse = app.ExecuteResponse

type ValidateRequest = app.ValidateRequest

type ValidateResponse = app.ValidateResponse

type ScriptRunView = app.ScriptRunView

type DraftScriptRequest = app.DraftScriptRequest

type DraftScriptResponse = app.DraftScriptResponse
