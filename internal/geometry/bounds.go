package geometry

import (
	"math"

	"github.com/alexanderramin/plancad/internal/domain"
)

// DefaultBounds is the box reported for a drawing with no shapes.
var DefaultBounds = domain.BoundingBox{
	Min: domain.Point{X: 0, Y: 0},
	Max: domain.Point{X: 1000, Y: 1000},
}

// ShapeBounds returns the axis-aligned box containing the shape's geometry.
// An empty coordinate list yields the zero box.
func ShapeBounds(s domain.Shape) domain.BoundingBox {
	g := s.Geometry
	if len(g.Coordinates) == 0 {
		return domain.BoundingBox{}
	}

	anchor := g.Coordinates[0]
	switch g.Kind {
	case domain.GeometryRectangle:
		if g.Dimensions == nil {
			return domain.BoundingBox{Min: anchor, Max: anchor}
		}
		return normalize(anchor, domain.Point{
			X: anchor.X + g.Dimensions.Width,
			Y: anchor.Y + g.Dimensions.Height,
		})
	case domain.GeometryCircle:
		if g.Radius == nil {
			return domain.BoundingBox{Min: anchor, Max: anchor}
		}
		r := math.Abs(*g.Radius)
		return domain.BoundingBox{
			Min: domain.Point{X: anchor.X - r, Y: anchor.Y - r},
			Max: domain.Point{X: anchor.X + r, Y: anchor.Y + r},
		}
	default:
		return PointsBounds(g.Coordinates)
	}
}

// PointsBounds folds min/max over every point. Empty input yields the zero box.
func PointsBounds(points []domain.Point) domain.BoundingBox {
	if len(points) == 0 {
		return domain.BoundingBox{}
	}
	b := domain.BoundingBox{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b = extend(b, p)
	}
	return b
}

// DrawingBounds returns the union of all shape bounds, or DefaultBounds when
// there are no shapes.
func DrawingBounds(shapes []domain.Shape) domain.BoundingBox {
	if len(shapes) == 0 {
		return DefaultBounds
	}
	b := ShapeBounds(shapes[0])
	for _, s := range shapes[1:] {
		b = Union(b, ShapeBounds(s))
	}
	return b
}

// Union returns the smallest box containing both a and b.
func Union(a, b domain.BoundingBox) domain.BoundingBox {
	return extend(extend(a, b.Min), b.Max)
}

func extend(b domain.BoundingBox, p domain.Point) domain.BoundingBox {
	return domain.BoundingBox{
		Min: domain.Point{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y)},
		Max: domain.Point{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y)},
	}
}

func normalize(a, b domain.Point) domain.BoundingBox {
	return extend(domain.BoundingBox{Min: a, Max: a}, b)
}
