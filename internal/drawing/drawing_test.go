package drawing

import (
	"testing"
	"time"

	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t0 = time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
)

func pt(x, y float64) domain.Point { return domain.Point{X: x, Y: y} }

// sample builds a drawing with one shape of every kind.
func sample(t *testing.T) *domain.Drawing {
	t.Helper()
	f := geometry.NewFactory()
	wall, err := f.Wall("wall", pt(0, 0), pt(1000, 0), 100)
	require.NoError(t, err)
	column, err := f.Column("column", pt(500, 500), domain.Dimensions{Width: 200, Height: 200}, domain.ColumnCircular)
	require.NoError(t, err)
	door, err := f.Door("door", pt(900, 0), 800, domain.DoorRight)
	require.NoError(t, err)
	shelf, err := f.Fixture("shelf", pt(200, 200), domain.Dimensions{Width: 400, Height: 100}, "shelf")
	require.NoError(t, err)
	register, err := f.Equipment("register", pt(1000, 1000), domain.Dimensions{Width: 200, Height: 200}, "register")
	require.NoError(t, err)
	area, err := f.Area("area", []domain.Point{pt(1600, 1000), pt(1900, 1000), pt(1900, 1400), pt(1600, 1400)}, "storage")
	require.NoError(t, err)
	shelf = shelf.WithLabel("Shelf A")

	d := WithShapes(New("Store", domain.UnitsMillimeter, t0), []domain.Shape{wall, column, door, shelf, register, area}, t1)
	d, layer := AddLayer(d, "Structure", t1)
	d, err = AssignToLayer(d, layer.ID, []string{"wall", "column"}, t1)
	require.NoError(t, err)
	d, _, err = SaveTemplate(d, "Checkout", "counter and register", []string{"shelf", "register"}, t1)
	require.NoError(t, err)
	return d
}

func TestNew(t *testing.T) {
	d := New("Plan", "", t0)
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, domain.UnitsMillimeter, d.Metadata.Units)
	assert.Equal(t, 1.0, d.Metadata.Scale)
	assert.Equal(t, geometry.DefaultBounds, d.Metadata.Bounds)
	assert.Empty(t, d.Shapes)
	assert.Equal(t, t0, d.CreatedAt)
}

func TestRefresh_BoundsCoverAllShapes(t *testing.T) {
	d := sample(t)
	for _, s := range d.Shapes {
		b := geometry.ShapeBounds(s)
		assert.True(t, d.Metadata.Bounds.Contains(b.Min), s.ID)
		assert.True(t, d.Metadata.Bounds.Contains(b.Max), s.ID)
	}
	assert.Equal(t, pt(0, -800), d.Metadata.Bounds.Min, "door swing reaches one width below its hinge")
}

func TestClear(t *testing.T) {
	d := sample(t)
	cleared := Clear(d, t1.Add(time.Minute))

	assert.Empty(t, cleared.Shapes)
	assert.Equal(t, d.ID, cleared.ID)
	assert.Equal(t, d.Name, cleared.Name)
	assert.Equal(t, geometry.DefaultBounds, cleared.Metadata.Bounds)
	assert.Len(t, cleared.Templates, 1)
	require.Len(t, cleared.Metadata.Layers, 1)
	assert.Empty(t, cleared.Metadata.Layers[0].Shapes)
	assert.Len(t, d.Shapes, 6, "input untouched")
}

func TestSummarize(t *testing.T) {
	s := Summarize(sample(t))
	assert.Equal(t, 6, s.Shapes)
	assert.Equal(t, 1, s.ByType[domain.ShapeWall])
	assert.Equal(t, 1, s.ByType[domain.ShapeArea])
	assert.Greater(t, s.TotalArea, 300.0*400)
}

func TestLayers(t *testing.T) {
	d := sample(t)
	d, second := AddLayer(d, "Fixtures", t1)
	d, err := AssignToLayer(d, second.ID, []string{"wall", "shelf", "shelf"}, t1)
	require.NoError(t, err)

	assert.Equal(t, []string{"column"}, d.Metadata.Layers[0].Shapes, "wall moved off the first layer")
	assert.Equal(t, []string{"wall", "shelf"}, d.Metadata.Layers[1].Shapes)

	_, err = AssignToLayer(d, "nope", []string{"wall"}, t1)
	assert.ErrorIs(t, err, domain.ErrLayerNotFound)
	_, err = AssignToLayer(d, second.ID, []string{"ghost"}, t1)
	assert.ErrorContains(t, err, "ghost")

	d, err = SetLayerFlags(d, second.ID, false, true, t1)
	require.NoError(t, err)
	assert.False(t, d.Metadata.Layers[1].Visible)
	assert.Equal(t, map[string]string{"wall": "Fixtures", "shelf": "Fixtures"}, LockedShapes(d))

	_, err = SetLayerFlags(d, "nope", true, true, t1)
	assert.ErrorIs(t, err, domain.ErrLayerNotFound)
}

func TestTemplates(t *testing.T) {
	d := sample(t)
	require.Len(t, d.Templates, 1)
	tmpl := d.Templates[0]
	require.Len(t, tmpl.Shapes, 2)
	assert.Equal(t, pt(0, 0), tmpl.Shapes[0].Geometry.Coordinates[0], "shapes are stored relative to the group origin")
	assert.Equal(t, pt(800, 800), tmpl.Shapes[1].Geometry.Coordinates[0])

	placed, ids, err := PlaceTemplate(d, tmpl.ID, pt(3000, 3000), geometry.NewFactory(), t1)
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Len(t, placed.Shapes, 8)

	s, ok := placed.FindShape(ids[1])
	require.True(t, ok)
	assert.Equal(t, pt(3800, 3800), s.Geometry.Coordinates[0])
	assert.Equal(t, 3800.0+200, placed.Metadata.Bounds.Max.X)

	_, _, err = PlaceTemplate(d, "nope", pt(0, 0), geometry.NewFactory(), t1)
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)

	_, _, err = SaveTemplate(d, "empty", "", nil, t1)
	assert.Error(t, err)
	_, _, err = SaveTemplate(d, "ghost", "", []string{"ghost"}, t1)
	assert.ErrorContains(t, err, "ghost")
}
