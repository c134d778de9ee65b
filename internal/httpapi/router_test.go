package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexanderramin/plancad/internal/app"
	"github.com/alexanderramin/plancad/internal/command"
	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/repository"
	"github.com/alexanderramin/plancad/internal/script"
	"github.com/alexanderramin/plancad/internal/service"
	"github.com/alexanderramin/plancad/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiFixture struct {
	router   chi.Router
	drawings repository.DrawingRepo
}

func newAPI(t *testing.T, drafts service.DraftService) *apiFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	v, err := command.NewValidator()
	require.NoError(t, err)

	drawings := repository.NewSQLiteDrawingRepo(database)
	runs := repository.NewSQLiteScriptRunRepo(database)
	locks := service.NewDrawingLocks()

	h := &Handler{
		Scripts:  service.NewScriptService(script.NewRunner(v), drawings, runs, testutil.NewTestUoW(database), locks, domain.UnitsMillimeter),
		Drawings: service.NewDrawingService(drawings, locks, domain.UnitsMillimeter),
		Catalog:  service.NewCatalogService(),
		Drafts:   drafts,
	}
	return &apiFixture{router: NewRouter(h), drawings: drawings}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
		Line    int    `json:"line"`
	} `json:"error"`
}

func (f *apiFixture) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestHealth(t *testing.T) {
	f := newAPI(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SERVING", rec.Body.String())
}

func TestExecute_Success(t *testing.T) {
	f := newAPI(t, nil)
	rec, env := f.do(t, http.MethodPost, "/api/v1/scripts/execute",
		`{"script": "cad.draw_wall((0, 0), (1000, 0))\ncad.log(\"ok\")"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, env.Success)

	var data app.ExecuteResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotNil(t, data.Drawing)
	assert.Len(t, data.Drawing.Shapes, 1)
	assert.Equal(t, []string{"ok"}, data.Logs)
	assert.Len(t, data.CreatedIDs, 1)
}

func TestExecute_ScriptErrors(t *testing.T) {
	f := newAPI(t, nil)
	tests := []struct {
		name string
		body string
		kind string
		line int
	}{
		{"syntax", `{"script": "x = 1\ny = = 2"}`, "syntax", 2},
		{"policy", `{"script": "import os"}`, "validation", 1},
		{"runtime", `{"script": "cad.log(\"a\")\nfail(\"boom\")"}`, "runtime", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := f.do(t, http.MethodPost, "/api/v1/scripts/execute", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.kind, env.Error.Type)
			assert.Equal(t, tt.line, env.Error.Line)
		})
	}

	rec, env := f.do(t, http.MethodPost, "/api/v1/scripts/execute", `{"script": "cad.log(\"a\")\nfail(\"boom\")"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var data executeData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, []string{"a"}, data.Logs)
}

func TestExecute_BadRequests(t *testing.T) {
	f := newAPI(t, nil)

	rec, env := f.do(t, http.MethodPost, "/api/v1/scripts/execute", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", env.Error.Type)

	rec, _ = f.do(t, http.MethodPost, "/api/v1/scripts/execute", `{"script":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = f.do(t, http.MethodPost, "/api/v1/scripts/execute", `{"script": "x = 1", "drawingId": "missing"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", env.Error.Type)
}

func TestValidate(t *testing.T) {
	f := newAPI(t, nil)

	rec, env := f.do(t, http.MethodPost, "/api/v1/scripts/validate", `{"script": "cad.draw_door((0, 0))"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	rec, env = f.do(t, http.MethodPost, "/api/v1/scripts/validate", `{"script": "f = open('x')"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation", env.Error.Type)
}

func TestCommands(t *testing.T) {
	f := newAPI(t, nil)
	rec, env := f.do(t, http.MethodGet, "/api/v1/commands", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var specs []command.Spec
	require.NoError(t, json.Unmarshal(env.Data, &specs))
	require.Len(t, specs, len(command.Catalog()))
	assert.Equal(t, command.Catalog()[0].Name, specs[0].Name)
}

func TestDrawingLifecycle(t *testing.T) {
	f := newAPI(t, nil)

	rec, env := f.do(t, http.MethodPost, "/api/v1/drawings", `{"name": "Shop", "units": "cm"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var d domain.Drawing
	require.NoError(t, json.Unmarshal(env.Data, &d))
	assert.Equal(t, domain.UnitsCentimeter, d.Metadata.Units)

	rec, _ = f.do(t, http.MethodPost, "/api/v1/scripts/execute",
		`{"script": "cad.place_fixture((0, 0), 40, 10, \"shelf\", id=\"s1\")", "drawingId": "`+d.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env = f.do(t, http.MethodGet, "/api/v1/drawings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []app.DrawingSummary
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].ShapeCount)

	rec, env = f.do(t, http.MethodGet, "/api/v1/drawings/"+d.ID+"/runs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var runs []app.ScriptRunView
	require.NoError(t, json.Unmarshal(env.Data, &runs))
	require.Len(t, runs, 1)
	assert.True(t, runs[0].Success)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/drawings/"+d.ID+"/runs?limit=x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = f.do(t, http.MethodPost, "/api/v1/drawings/"+d.ID+"/clear", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var cleared domain.Drawing
	require.NoError(t, json.Unmarshal(env.Data, &cleared))
	assert.Empty(t, cleared.Shapes)

	rec, _ = f.do(t, http.MethodDelete, "/api/v1/drawings/"+d.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = f.do(t, http.MethodGet, "/api/v1/drawings/"+d.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", env.Error.Type)
}

func TestExportImport(t *testing.T) {
	f := newAPI(t, nil)
	ctx := context.Background()
	wall := testutil.NewTestWall("w1", domain.Point{X: 0, Y: 0}, domain.Point{X: 1000, Y: 0})
	d := testutil.NewTestDrawing("Shop", testutil.WithShapes(wall))
	require.NoError(t, f.drawings.Create(ctx, d))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/drawings/"+d.ID+"/export?format=yaml", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), d.ID+".yaml")
	snapshot := rec.Body.Bytes()

	require.NoError(t, f.drawings.Delete(ctx, d.ID))

	req = httptest.NewRequest(http.MethodPost, "/api/v1/drawings/import?format=yaml", bytes.NewReader(snapshot))
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	stored, err := f.drawings.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.Shapes, stored.Shapes)

	rec, _ = f.do(t, http.MethodPost, "/api/v1/drawings/import", `{"shapes": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/drawings/"+d.ID+"/export?format=dxf", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLayersAndTemplates(t *testing.T) {
	f := newAPI(t, nil)
	ctx := context.Background()
	shelf := testutil.NewTestFixture("f1", domain.Point{X: 0, Y: 0}, 400, 100)
	d := testutil.NewTestDrawing("Shop", testutil.WithShapes(shelf))
	require.NoError(t, f.drawings.Create(ctx, d))
	base := "/api/v1/drawings/" + d.ID

	rec, env := f.do(t, http.MethodPost, base+"/layers", `{"name": "Fixtures"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var layer domain.Layer
	require.NoError(t, json.Unmarshal(env.Data, &layer))

	rec, _ = f.do(t, http.MethodPut, base+"/layers/"+layer.ID+"/shapes", `{"shapeIds": ["f1"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, _ = f.do(t, http.MethodPut, base+"/layers/"+layer.ID+"/shapes", `{"shapeIds": ["ghost"]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = f.do(t, http.MethodPatch, base+"/layers/"+layer.ID, `{"visible": true, "locked": true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = f.do(t, http.MethodPost, "/api/v1/scripts/execute", `{"script": "cad.delete_shape(\"f1\")", "drawingId": "`+d.ID+`"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Error.Message, "locked")

	rec, env = f.do(t, http.MethodPost, base+"/templates", `{"name": "Shelf", "shapeIds": ["f1"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var tmpl domain.Template
	require.NoError(t, json.Unmarshal(env.Data, &tmpl))

	rec, env = f.do(t, http.MethodPost, base+"/templates/"+tmpl.ID+"/place", `{"at": {"x": 2000, "y": 0}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var placed app.PlaceTemplateResponse
	require.NoError(t, json.Unmarshal(env.Data, &placed))
	assert.Len(t, placed.CreatedIDs, 1)
	assert.Len(t, placed.Drawing.Shapes, 2)
}

type fixedDrafter struct{ resp *app.DraftScriptResponse }

func (d fixedDrafter) Draft(context.Context, app.DraftScriptRequest) (*app.DraftScriptResponse, error) {
	return d.resp, nil
}

func TestDraft(t *testing.T) {
	disabled := newAPI(t, nil)
	rec, env := disabled.do(t, http.MethodPost, "/api/v1/scripts/draft", `{"description": "a wall"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "disabled", env.Error.Type)

	f := newAPI(t, fixedDrafter{resp: &app.DraftScriptResponse{Script: "cad.draw_wall((0, 0), (1, 0))", Valid: true, Attempts: 1}})
	rec, env = f.do(t, http.MethodPost, "/api/v1/scripts/draft", `{"description": "a wall"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var draft app.DraftScriptResponse
	require.NoError(t, json.Unmarshal(env.Data, &draft))
	assert.True(t, draft.Valid)

	rec, _ = f.do(t, http.MethodPost, "/api/v1/scripts/draft", `{"description": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
