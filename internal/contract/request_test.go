package contract

import (
	"encoding/json"
	"testing"

	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExecuteRequest_SetsDefaults(t *testing.T) {
	req := NewExecuteRequest("cad.log(\"hi\")")

	assert.Equal(t, "cad.log(\"hi\")", req.Script)
	assert.NotNil(t, req.Variables)
	assert.Empty(t, req.DrawingID)
	assert.Nil(t, req.Drawing)
	assert.False(t, req.DryRun)
}

func TestExecuteRequest_DecodesWireNames(t *testing.T) {
	var req ExecuteRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"script": "x = 1",
		"drawingId": "d-1",
		"variables": {"rows": 3},
		"selected": ["a"]
	}`), &req))

	assert.Equal(t, "d-1", req.DrawingID)
	assert.Equal(t, []string{"a"}, req.Selected)
	assert.Equal(t, float64(3), req.Variables["rows"])
}

func TestResponse_OmitsEmptyFields(t *testing.T) {
	b, err := json.Marshal(OK(map[string]int{"n": 1}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"n":1}}`, string(b))

	b, err = json.Marshal(Fail(ErrCodeNotFound, "drawing not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"type":"not_found","message":"drawing not found"}}`, string(b))
}

func TestFromScriptError(t *testing.T) {
	apiErr := FromScriptError(&domain.ScriptError{
		Kind:    domain.ErrorSyntax,
		Message: "got '=', want primary expression",
		Line:    2,
		Column:  5,
	})
	assert.Equal(t, ErrCodeSyntax, apiErr.Type)
	assert.Equal(t, 2, apiErr.Line)
	assert.Equal(t, 5, apiErr.Column)
}
