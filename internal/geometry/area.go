package geometry

import (
	"math"

	"github.com/alexanderramin/plancad/internal/domain"
)

// PolygonArea returns the unsigned shoelace area of the vertex ring.
func PolygonArea(vertices []domain.Point) float64 {
	n := len(vertices)
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += vertices[i].X*vertices[j].Y - vertices[j].X*vertices[i].Y
	}
	return math.Abs(sum) / 2
}

// ShapeArea returns the enclosed area of a shape. Lines have no area.
func ShapeArea(s domain.Shape) float64 {
	g := s.Geometry
	switch g.Kind {
	case domain.GeometryRectangle:
		if g.Dimensions != nil {
			return g.Dimensions.Width * g.Dimensions.Height
		}
	case domain.GeometryCircle:
		if g.Radius != nil {
			return math.Pi * *g.Radius * *g.Radius
		}
	case domain.GeometryPolygon:
		return PolygonArea(g.Coordinates)
	}
	return 0
}

// Centroid returns the arithmetic mean of the points, or the origin for
// an empty slice.
func Centroid(points []domain.Point) domain.Point {
	if len(points) == 0 {
		return domain.Point{}
	}
	var c domain.Point
	for _, p := range points {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(points))
	return domain.Point{X: c.X / n, Y: c.Y / n}
}

// ShapeCenter returns the visual centre of a shape: the middle of a
// rectangle, the centre of a circle and the vertex mean otherwise.
func ShapeCenter(s domain.Shape) domain.Point {
	g := s.Geometry
	if len(g.Coordinates) == 0 {
		return domain.Point{}
	}
	switch g.Kind {
	case domain.GeometryRectangle:
		if g.Dimensions != nil {
			o := g.Coordinates[0]
			return domain.Point{X: o.X + g.Dimensions.Width/2, Y: o.Y + g.Dimensions.Height/2}
		}
	case domain.GeometryCircle:
		return g.Coordinates[0]
	}
	return Centroid(g.Coordinates)
}
