package geometry

import (
	"math"
	"testing"

	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y float64) domain.Point { return domain.Point{X: x, Y: y} }

func randomPoint(f *gofakeit.Faker) domain.Point {
	return pt(f.Float64Range(-5000, 5000), f.Float64Range(-5000, 5000))
}

// perpendicularWidth measures the distance between the two long edges of a
// wall outline along the wall's normal.
func perpendicularWidth(poly []domain.Point, start, end domain.Point) float64 {
	dx, dy := end.X-start.X, end.Y-start.Y
	l := math.Hypot(dx, dy)
	nx, ny := -dy/l, dx/l
	a := poly[0].X*nx + poly[0].Y*ny
	b := poly[3].X*nx + poly[3].Y*ny
	return math.Abs(a - b)
}

func TestWallPolygon_HorizontalWall(t *testing.T) {
	poly := WallPolygon(pt(0, 0), pt(1000, 0), 100)
	require.Len(t, poly, 4)
	assert.Equal(t, []domain.Point{pt(0, 50), pt(1000, 50), pt(1000, -50), pt(0, -50)}, poly)
}

func TestWallPolygon_WidthEqualsThickness(t *testing.T) {
	f := gofakeit.New(42)
	for i := 0; i < 200; i++ {
		start, end := randomPoint(f), randomPoint(f)
		if Distance(start, end) < 1e-6 {
			continue
		}
		thickness := f.Float64Range(1, 500)

		poly := WallPolygon(start, end, thickness)
		require.Len(t, poly, 4)
		assert.InDelta(t, thickness, perpendicularWidth(poly, start, end), 1e-6)
		assert.InDelta(t, thickness*Distance(start, end), PolygonArea(poly), 1e-3*thickness)
	}
}

func TestWallPolygon_Degenerate(t *testing.T) {
	p := pt(12.5, -3)
	poly := WallPolygon(p, p, 100)
	assert.Equal(t, []domain.Point{p, p, p, p}, poly)
}

func TestDoorArc(t *testing.T) {
	left := DoorArc(pt(100, 100), 800, domain.DoorLeft)
	require.Len(t, left, DoorArcSegments+1)
	assert.InDelta(t, 900, left[0].X, 1e-9)
	assert.InDelta(t, 100, left[0].Y, 1e-9)
	assert.InDelta(t, 100, left[DoorArcSegments].X, 1e-9)
	assert.InDelta(t, -700, left[DoorArcSegments].Y, 1e-9)

	right := DoorArc(pt(100, 100), 800, domain.DoorRight)
	require.Len(t, right, DoorArcSegments+1)
	for i := range left {
		assert.InDelta(t, 200-left[i].X, right[i].X, 1e-9, "point %d mirrored across x=100", i)
		assert.InDelta(t, left[i].Y, right[i].Y, 1e-9)
		assert.InDelta(t, 800, Distance(pt(100, 100), right[i]), 1e-9)
	}
}

func TestShapeBounds_ContainsEveryCoordinate(t *testing.T) {
	f := gofakeit.New(7)
	factory := NewFactory()
	for i := 0; i < 100; i++ {
		wall, err := factory.Wall("", randomPoint(f), randomPoint(f), f.Float64Range(1, 300))
		require.NoError(t, err)
		door, err := factory.Door("", randomPoint(f), f.Float64Range(100, 1200), domain.DoorRight)
		require.NoError(t, err)
		area, err := factory.Area("", []domain.Point{randomPoint(f), randomPoint(f), randomPoint(f), randomPoint(f)}, "zone")
		require.NoError(t, err)

		for _, s := range []domain.Shape{wall, door, area} {
			b := ShapeBounds(s)
			for _, c := range s.Geometry.Coordinates {
				assert.True(t, b.Contains(c), "%s bounds %v should contain %v", s.Type, b, c)
			}
		}
	}
}

func TestShapeBounds_PerKind(t *testing.T) {
	r := 25.0
	tests := []struct {
		name string
		geom domain.Geometry
		want domain.BoundingBox
	}{
		{
			name: "rectangle uses anchor and dimensions",
			geom: domain.Geometry{Kind: domain.GeometryRectangle, Coordinates: []domain.Point{pt(200, 200)}, Dimensions: &domain.Dimensions{Width: 400, Height: 100}},
			want: domain.BoundingBox{Min: pt(200, 200), Max: pt(600, 300)},
		},
		{
			name: "circle uses centre plus radius",
			geom: domain.Geometry{Kind: domain.GeometryCircle, Coordinates: []domain.Point{pt(0, 0)}, Radius: &r},
			want: domain.BoundingBox{Min: pt(-25, -25), Max: pt(25, 25)},
		},
		{
			name: "line folds over points",
			geom: domain.Geometry{Kind: domain.GeometryLine, Coordinates: []domain.Point{pt(5, -1), pt(-3, 9)}},
			want: domain.BoundingBox{Min: pt(-3, -1), Max: pt(5, 9)},
		},
		{
			name: "empty coordinates",
			geom: domain.Geometry{Kind: domain.GeometryPolygon},
			want: domain.BoundingBox{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShapeBounds(domain.Shape{Geometry: tt.geom}))
		})
	}
}

func TestDrawingBounds(t *testing.T) {
	assert.Equal(t, domain.BoundingBox{Min: pt(0, 0), Max: pt(1000, 1000)}, DrawingBounds(nil))

	factory := NewFactory()
	wall, err := factory.Wall("", pt(0, 0), pt(1000, 0), 100)
	require.NoError(t, err)
	fixture, err := factory.Fixture("", pt(200, 200), domain.Dimensions{Width: 400, Height: 100}, "shelf")
	require.NoError(t, err)

	b := DrawingBounds([]domain.Shape{wall, fixture})
	assert.Equal(t, domain.BoundingBox{Min: pt(0, -50), Max: pt(1000, 300)}, b)
}

func TestPolygonArea(t *testing.T) {
	square := []domain.Point{pt(0, 0), pt(1, 0), pt(1, 1), pt(0, 1)}
	assert.InDelta(t, 1.0, PolygonArea(square), 1e-12)

	for k := range square {
		rotated := append(append([]domain.Point{}, square[k:]...), square[:k]...)
		assert.InDelta(t, 1.0, PolygonArea(rotated), 1e-12)
	}

	reversed := []domain.Point{square[3], square[2], square[1], square[0]}
	assert.InDelta(t, 1.0, PolygonArea(reversed), 1e-12)

	assert.Zero(t, PolygonArea(nil))
}

func TestPointInPolygon(t *testing.T) {
	square := []domain.Point{pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10)}
	assert.True(t, PointInPolygon(pt(5, 5), square))
	assert.False(t, PointInPolygon(pt(15, 5), square))
	assert.False(t, PointInPolygon(pt(5, 5), nil))
}

func TestPointInShape(t *testing.T) {
	factory := NewFactory()
	fixture, err := factory.Fixture("", pt(0, 0), domain.Dimensions{Width: 10, Height: 10}, "shelf")
	require.NoError(t, err)
	assert.True(t, PointInShape(pt(0, 0), fixture), "min edge is inclusive")
	assert.True(t, PointInShape(pt(9.99, 5), fixture))
	assert.False(t, PointInShape(pt(10, 5), fixture), "max edge is exclusive")

	column, err := factory.Column("", pt(0, 0), domain.Dimensions{Width: 20, Height: 20}, domain.ColumnCircular)
	require.NoError(t, err)
	assert.True(t, PointInShape(pt(10, 0), column), "boundary is inside")
	assert.False(t, PointInShape(pt(10, 1), column))

	door, err := factory.Door("", pt(0, 0), 800, domain.DoorLeft)
	require.NoError(t, err)
	assert.False(t, PointInShape(pt(400, -10), door), "lines contain nothing")

	assert.Equal(t, []string{fixture.ID, column.ID}, ShapesAt(pt(5, 5), []domain.Shape{fixture, column, door}))
}

func TestShapeArea(t *testing.T) {
	factory := NewFactory()
	fixture, _ := factory.Fixture("", pt(0, 0), domain.Dimensions{Width: 4, Height: 5}, "shelf")
	column, _ := factory.Column("", pt(0, 0), domain.Dimensions{Width: 2, Height: 2}, domain.ColumnCircular)
	door, _ := factory.Door("", pt(0, 0), 800, domain.DoorLeft)

	assert.InDelta(t, 20, ShapeArea(fixture), 1e-12)
	assert.InDelta(t, math.Pi, ShapeArea(column), 1e-12)
	assert.Zero(t, ShapeArea(door))
}

func TestSnapToGrid(t *testing.T) {
	assert.Equal(t, pt(10, 20), SnapToGrid(pt(12, 17), 10))
	assert.Equal(t, pt(-10, 0), SnapToGrid(pt(-12, 4), 10))
	assert.Equal(t, pt(12, 17), SnapToGrid(pt(12, 17), 0))
}

func TestConvertUnits(t *testing.T) {
	tests := []struct {
		value    float64
		from, to domain.Units
		want     float64
	}{
		{1, domain.UnitsMeter, domain.UnitsMillimeter, 1000},
		{250, domain.UnitsMillimeter, domain.UnitsCentimeter, 25},
		{42, domain.UnitsCentimeter, domain.UnitsMeter, 0.42},
		{7, domain.UnitsMillimeter, domain.UnitsMillimeter, 7},
	}
	for _, tt := range tests {
		got, err := ConvertUnits(tt.value, tt.from, tt.to)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-12)
	}

	_, err := ConvertUnits(1, "ft", domain.UnitsMeter)
	assert.Error(t, err)
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5, Distance(pt(0, 0), pt(3, 4)), 1e-12)
}
