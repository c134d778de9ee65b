package geometry

import (
	"testing"

	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + string(rune('0'+n))
	}
}

func TestFactory_PresetAndGeneratedIDs(t *testing.T) {
	f := &Factory{NewID: sequentialIDs("s")}

	generated, err := f.Fixture("", pt(0, 0), domain.Dimensions{Width: 1, Height: 1}, "shelf")
	require.NoError(t, err)
	assert.Equal(t, "s1", generated.ID)

	preset, err := f.Fixture("fixed", pt(0, 0), domain.Dimensions{Width: 1, Height: 1}, "shelf")
	require.NoError(t, err)
	assert.Equal(t, "fixed", preset.ID)
}

func TestFactory_Wall(t *testing.T) {
	f := NewFactory()
	wall, err := f.Wall("", pt(0, 0), pt(1000, 0), 100)
	require.NoError(t, err)

	assert.Equal(t, domain.ShapeWall, wall.Type)
	assert.Equal(t, domain.GeometryPolygon, wall.Geometry.Kind)
	assert.Len(t, wall.Geometry.Coordinates, 4)
	assert.Equal(t, 100.0, wall.Properties.Metadata["thickness"])
	assert.NoError(t, wall.Geometry.Validate())

	_, err = f.Wall("", pt(0, 0), pt(1, 0), 0)
	assert.Error(t, err)
}

func TestFactory_Column(t *testing.T) {
	f := NewFactory()

	rect, err := f.Column("", pt(500, 500), domain.Dimensions{Width: 200, Height: 100}, "")
	require.NoError(t, err)
	assert.Equal(t, domain.GeometryRectangle, rect.Geometry.Kind)
	assert.Equal(t, pt(400, 450), rect.Geometry.Coordinates[0])
	assert.Equal(t, "rectangular", rect.Properties.Metadata["type"])

	circle, err := f.Column("", pt(500, 500), domain.Dimensions{Width: 200, Height: 200}, domain.ColumnCircular)
	require.NoError(t, err)
	assert.Equal(t, domain.GeometryCircle, circle.Geometry.Kind)
	require.NotNil(t, circle.Geometry.Radius)
	assert.Equal(t, 100.0, *circle.Geometry.Radius)

	_, err = f.Column("", pt(0, 0), domain.Dimensions{Width: 1, Height: 1}, "hexagonal")
	assert.Error(t, err)
}

func TestFactory_DoorDefaultsAndValidation(t *testing.T) {
	f := NewFactory()
	door, err := f.Door("", pt(900, 0), 800, "")
	require.NoError(t, err)
	assert.Equal(t, "left", door.Properties.Metadata["openingDirection"])
	assert.Len(t, door.Geometry.Coordinates, DoorArcSegments+1)

	_, err = f.Door("", pt(0, 0), 800, "up")
	assert.Error(t, err)
	_, err = f.Door("", pt(0, 0), -1, domain.DoorLeft)
	assert.Error(t, err)
}

func TestFactory_Area(t *testing.T) {
	f := NewFactory()
	vertices := []domain.Point{pt(1600, 1000), pt(1900, 1000), pt(1900, 1400), pt(1600, 1400)}
	area, err := f.Area("", vertices, "storage")
	require.NoError(t, err)
	assert.InDelta(t, 300*400, ShapeArea(area), 1e-9)
	assert.Equal(t, domain.LineDashed, area.Style.LineStyle)

	vertices[0] = pt(0, 0)
	assert.Equal(t, pt(1600, 1000), area.Geometry.Coordinates[0], "factory copies the vertex slice")

	_, err = f.Area("", vertices[:2], "storage")
	assert.Error(t, err)
}

func TestFactory_CopyTranslatesWithFreshID(t *testing.T) {
	f := NewFactory()
	orig, err := f.Fixture("orig", pt(10, 10), domain.Dimensions{Width: 5, Height: 5}, "shelf")
	require.NoError(t, err)

	cp := f.Copy("", orig, pt(DefaultCopyOffset, DefaultCopyOffset))
	assert.NotEqual(t, orig.ID, cp.ID)
	assert.Equal(t, pt(60, 60), cp.Geometry.Coordinates[0])
	assert.Equal(t, pt(10, 10), orig.Geometry.Coordinates[0], "original untouched")

	cp.Properties.Metadata["fixtureType"] = "counter"
	assert.Equal(t, "shelf", orig.Properties.Metadata["fixtureType"], "metadata is deep copied")
}

func TestRotate(t *testing.T) {
	f := NewFactory()
	fixture, err := f.Fixture("", pt(0, 0), domain.Dimensions{Width: 10, Height: 10}, "shelf")
	require.NoError(t, err)

	rotated := Rotate(fixture, 90, nil)
	assert.Equal(t, domain.GeometryPolygon, rotated.Geometry.Kind)
	require.Len(t, rotated.Geometry.Coordinates, 4)
	assert.InDelta(t, 100, PolygonArea(rotated.Geometry.Coordinates), 1e-9)
	c := ShapeCenter(rotated)
	assert.InDelta(t, 5, c.X, 1e-9)
	assert.InDelta(t, 5, c.Y, 1e-9)

	same := Rotate(fixture, 360, nil)
	assert.Equal(t, domain.GeometryRectangle, same.Geometry.Kind)

	pivot := pt(0, 0)
	line := domain.Shape{Geometry: domain.Geometry{Kind: domain.GeometryLine, Coordinates: []domain.Point{pt(1, 0), pt(2, 0)}}}
	turned := Rotate(line, 90, &pivot)
	assert.InDelta(t, 0, turned.Geometry.Coordinates[1].X, 1e-9)
	assert.InDelta(t, 2, turned.Geometry.Coordinates[1].Y, 1e-9)
}

func TestTranslate_DoesNotMutateInput(t *testing.T) {
	line := domain.Shape{ID: "l", Geometry: domain.Geometry{Kind: domain.GeometryLine, Coordinates: []domain.Point{pt(1, 1), pt(2, 2)}}}
	moved := Translate(line, 50, -50)
	assert.Equal(t, []domain.Point{pt(51, -49), pt(52, -48)}, moved.Geometry.Coordinates)
	assert.Equal(t, []domain.Point{pt(1, 1), pt(2, 2)}, line.Geometry.Coordinates)
	assert.Equal(t, "l", moved.ID)
}
