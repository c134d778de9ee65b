package geometry

import "github.com/alexanderramin/plancad/internal/domain"

// PointInShape reports whether p lies inside the shape. Rectangles use
// half-open intervals [min, max) on both axes, circles include their
// boundary, polygons use the even-odd rule. Lines never contain a point.
func PointInShape(p domain.Point, s domain.Shape) bool {
	g := s.Geometry
	switch g.Kind {
	case domain.GeometryRectangle:
		if g.Dimensions == nil || len(g.Coordinates) == 0 {
			return false
		}
		o := g.Coordinates[0]
		return p.X >= o.X && p.X < o.X+g.Dimensions.Width &&
			p.Y >= o.Y && p.Y < o.Y+g.Dimensions.Height
	case domain.GeometryCircle:
		if g.Radius == nil || len(g.Coordinates) == 0 {
			return false
		}
		return Distance(p, g.Coordinates[0]) <= *g.Radius
	case domain.GeometryPolygon:
		return PointInPolygon(p, g.Coordinates)
	default:
		return false
	}
}

// PointInPolygon is the even-odd ray casting test. A ray is cast toward +x
// and edge crossings are counted; points exactly on an edge follow whatever
// the half-open crossing rule yields.
func PointInPolygon(p domain.Point, vertices []domain.Point) bool {
	inside := false
	n := len(vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := vertices[i], vertices[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) &&
			p.X < (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
	}
	return inside
}

// ShapesAt returns the ids of every shape containing p, in drawing order.
func ShapesAt(p domain.Point, shapes []domain.Shape) []string {
	var ids []string
	for _, s := range shapes {
		if PointInShape(p, s) {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
