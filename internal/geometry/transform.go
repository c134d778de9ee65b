package geometry

import (
	"math"

	"github.com/alexanderramin/plancad/internal/domain"
)

// Translate returns a copy of s with every coordinate offset by (dx, dy).
func Translate(s domain.Shape, dx, dy float64) domain.Shape {
	out := s.Clone()
	for i, p := range out.Geometry.Coordinates {
		out.Geometry.Coordinates[i] = domain.Point{X: p.X + dx, Y: p.Y + dy}
	}
	return out
}

// Rotate returns a copy of s rotated counter-clockwise by degrees around
// center, or around the shape's own centre when center is nil. Rectangles
// are axis-aligned by construction, so a rotation that is not a multiple of
// 360 degrees turns them into their four-corner polygon.
func Rotate(s domain.Shape, degrees float64, center *domain.Point) domain.Shape {
	pivot := ShapeCenter(s)
	if center != nil {
		pivot = *center
	}

	out := s.Clone()
	turns := math.Mod(degrees, 360)
	if almostEqual(turns, 0) {
		return out
	}

	if out.Geometry.Kind == domain.GeometryRectangle && out.Geometry.Dimensions != nil && len(out.Geometry.Coordinates) > 0 {
		out.Geometry = rectangleOutline(out.Geometry)
	}

	rad := degrees * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	for i, p := range out.Geometry.Coordinates {
		dx, dy := p.X-pivot.X, p.Y-pivot.Y
		out.Geometry.Coordinates[i] = domain.Point{
			X: pivot.X + dx*cos - dy*sin,
			Y: pivot.Y + dx*sin + dy*cos,
		}
	}
	return out
}

func rectangleOutline(g domain.Geometry) domain.Geometry {
	o := g.Coordinates[0]
	w, h := g.Dimensions.Width, g.Dimensions.Height
	return domain.Geometry{
		Kind: domain.GeometryPolygon,
		Coordinates: []domain.Point{
			o,
			{X: o.X + w, Y: o.Y},
			{X: o.X + w, Y: o.Y + h},
			{X: o.X, Y: o.Y + h},
		},
	}
}
