package pipeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/plancad/internal/command"
	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/drawing"
	"github.com/alexanderramin/plancad/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	created = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	applied = time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
)

func testOptions() []Option {
	n := 0
	return []Option{
		WithFactory(&geometry.Factory{NewID: func() string {
			n++
			return fmt.Sprintf("shape-%d", n)
		}}),
		WithClock(func() time.Time { return applied }),
	}
}

func emptyDrawing() *domain.Drawing {
	return drawing.New("Store", domain.UnitsMillimeter, created)
}

func pt(x, y float64) domain.Point { return domain.Point{X: x, Y: y} }

func wallCmd() command.Command {
	return command.New(command.CreateWall, map[string]any{"start": pt(0, 0), "end": pt(1000, 0), "thickness": 100})
}

func shelfCmd(id string) command.Command {
	params := map[string]any{"position": pt(200, 200), "width": 400, "height": 100, "fixture_type": "shelf"}
	if id != "" {
		params["id"] = id
	}
	return command.New(command.CreateFixture, params)
}

func apply(t *testing.T, d *domain.Drawing, cmds ...command.Command) *Result {
	t.Helper()
	res, err := Apply(d, cmds, testOptions()...)
	require.NoError(t, err)
	return res
}

func TestApply_WallAndFixture(t *testing.T) {
	res := apply(t, emptyDrawing(), wallCmd(), shelfCmd(""))
	d := res.Drawing

	require.Len(t, d.Shapes, 2)
	wall, fixture := d.Shapes[0], d.Shapes[1]

	assert.Equal(t, domain.ShapeWall, wall.Type)
	assert.Equal(t, domain.GeometryPolygon, wall.Geometry.Kind)
	assert.Len(t, wall.Geometry.Coordinates, 4)

	assert.Equal(t, domain.ShapeFixture, fixture.Type)
	assert.Equal(t, domain.GeometryRectangle, fixture.Geometry.Kind)
	assert.Equal(t, pt(200, 200), fixture.Geometry.Coordinates[0])
	assert.Equal(t, &domain.Dimensions{Width: 400, Height: 100}, fixture.Geometry.Dimensions)

	b := d.Metadata.Bounds
	assert.LessOrEqual(t, b.Min.X, 0.0)
	assert.GreaterOrEqual(t, b.Max.X, 1000.0)
	assert.LessOrEqual(t, b.Min.Y, -50.0)
	assert.GreaterOrEqual(t, b.Max.Y, 300.0)

	assert.Equal(t, []string{"shape-1", "shape-2"}, res.CreatedIDs)
	assert.Equal(t, applied, d.UpdatedAt)
	assert.Equal(t, created, d.CreatedAt)
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	d := apply(t, emptyDrawing(), shelfCmd("x")).Drawing
	before := d.Clone()

	_ = apply(t, d,
		command.New(command.MoveShape, map[string]any{"shape_id": "x", "delta_x": 10, "delta_y": 10}),
		command.New(command.AddLabel, map[string]any{"shape_id": "x", "text": "Shelf"}),
		wallCmd(),
	)
	assert.Equal(t, before, d)
}

func TestApply_DeleteIsIdempotent(t *testing.T) {
	d := apply(t, emptyDrawing(), wallCmd(), shelfCmd("x")).Drawing
	del := command.New(command.DeleteShape, map[string]any{"shape_id": "x"})

	once := apply(t, d, del).Drawing
	twice := apply(t, d, del, del).Drawing

	assert.Equal(t, once.Shapes, twice.Shapes)
	_, found := twice.FindShape("x")
	assert.False(t, found)
}

func TestApply_MoveThenDelete(t *testing.T) {
	res := apply(t, emptyDrawing(),
		shelfCmd("X"),
		command.New(command.MoveShape, map[string]any{"shape_id": "X", "delta_x": 50, "delta_y": 50}),
		command.New(command.DeleteShape, map[string]any{"shape_id": "X"}),
	)
	assert.Empty(t, res.Drawing.Shapes)
	assert.Equal(t, geometry.DefaultBounds, res.Drawing.Metadata.Bounds)
	assert.Equal(t, []string{"X"}, res.CreatedIDs)
}

func TestApply_MoveUnknownIsNoop(t *testing.T) {
	d := apply(t, emptyDrawing(), shelfCmd("x")).Drawing
	res := apply(t, d, command.New(command.MoveShape, map[string]any{"shape_id": "ghost", "delta_x": 1, "delta_y": 1}))
	assert.Equal(t, d.Shapes, res.Drawing.Shapes)
}

func TestApply_CopyUsesDefaultOffset(t *testing.T) {
	res := apply(t, emptyDrawing(),
		shelfCmd("x"),
		command.New(command.CopyShape, map[string]any{"shape_id": "x"}),
		command.New(command.CopyShape, map[string]any{"shape_id": "x", "offset_x": 0, "offset_y": 500, "id": "y"}),
		command.New(command.CopyShape, map[string]any{"shape_id": "missing"}),
	)
	shapes := res.Drawing.Shapes
	require.Len(t, shapes, 3)
	assert.Equal(t, pt(250, 250), shapes[1].Geometry.Coordinates[0])
	assert.NotEqual(t, "x", shapes[1].ID)
	assert.Equal(t, "y", shapes[2].ID)
	assert.Equal(t, pt(200, 700), shapes[2].Geometry.Coordinates[0])
	assert.Equal(t, []string{"x", "shape-1", "y"}, res.CreatedIDs)
}

func TestApply_LabelAndRotate(t *testing.T) {
	res := apply(t, emptyDrawing(),
		shelfCmd("x"),
		command.New(command.AddLabel, map[string]any{"shape_id": "x", "text": "Checkout"}),
		command.New(command.RotateShape, map[string]any{"shape_id": "x", "angle": 90}),
	)
	s := res.Drawing.Shapes[0]
	assert.Equal(t, "Checkout", s.Label)
	assert.Equal(t, domain.GeometryPolygon, s.Geometry.Kind)
	assert.InDelta(t, 400*100, geometry.ShapeArea(s), 1e-6)
}

func TestApply_AllOrNothing(t *testing.T) {
	d := emptyDrawing()
	bad := command.New(command.CreateWall, map[string]any{"start": pt(0, 0), "end": pt(10, 0), "thickness": -1}).AtLine(3)

	res, err := Apply(d, []command.Command{wallCmd().AtLine(1), shelfCmd("").AtLine(2), bad}, testOptions()...)
	require.Error(t, err)
	assert.Nil(t, res)

	se, ok := domain.AsScriptError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrorRuntime, se.Kind)
	assert.Equal(t, 3, se.Line)
	assert.Contains(t, se.Message, "thickness")
	assert.Empty(t, d.Shapes)
}

func TestApply_Errors(t *testing.T) {
	tests := []struct {
		name string
		cmds []command.Command
		want string
	}{
		{"unknown command", []command.Command{command.New("explode", nil)}, "unknown command"},
		{"missing param", []command.Command{command.New(command.MoveShape, map[string]any{"shape_id": "x"})}, "delta_x"},
		{"duplicate id", []command.Command{shelfCmd("x"), shelfCmd("x")}, "already exists"},
		{"area too small", []command.Command{command.New(command.CreateArea, map[string]any{"vertices": []any{[]any{0, 0}}, "area_type": "zone"})}, "3 vertices"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(emptyDrawing(), tt.cmds, testOptions()...)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestApply_LockedLayerRejectsEdits(t *testing.T) {
	d := apply(t, emptyDrawing(), shelfCmd("x")).Drawing
	d, layer := drawing.AddLayer(d, "Fixtures", applied)
	d, err := drawing.AssignToLayer(d, layer.ID, []string{"x"}, applied)
	require.NoError(t, err)
	d, err = drawing.SetLayerFlags(d, layer.ID, true, true, applied)
	require.NoError(t, err)

	_, err = Apply(d, []command.Command{command.New(command.DeleteShape, map[string]any{"shape_id": "x"})}, testOptions()...)
	assert.ErrorContains(t, err, "locked layer")

	res := apply(t, d, command.New(command.CopyShape, map[string]any{"shape_id": "x"}))
	assert.Len(t, res.Drawing.Shapes, 2, "copying a locked shape is allowed")
}

func TestApply_DeletePrunesLayerReferences(t *testing.T) {
	d := apply(t, emptyDrawing(), shelfCmd("x"), shelfCmd("y")).Drawing
	d, layer := drawing.AddLayer(d, "Fixtures", applied)
	d, err := drawing.AssignToLayer(d, layer.ID, []string{"x", "y"}, applied)
	require.NoError(t, err)

	res := apply(t, d, command.New(command.DeleteShape, map[string]any{"shape_id": "x"}))
	assert.Equal(t, []string{"y"}, res.Drawing.Metadata.Layers[0].Shapes)
}
