package domain

import "fmt"

// Point is a coordinate pair in drawing space.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns p offset by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

type Dimensions struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Valid reports whether both sides are strictly positive.
func (d Dimensions) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

type BoundingBox struct {
	Min Point `json:"min" yaml:"min"`
	Max Point `json:"max" yaml:"max"`
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() float64 { return b.Max.Y - b.Min.Y }

// Contains reports whether p lies inside the closed box.
func (b BoundingBox) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Geometry is a tagged union over GeometryKind. Dimensions is set for
// rectangles (anchored at Coordinates[0]) and Radius for circles (centred
// at Coordinates[0]).
type Geometry struct {
	Kind        GeometryKind `json:"type" yaml:"type"`
	Coordinates []Point      `json:"coordinates" yaml:"coordinates"`
	Dimensions  *Dimensions  `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	Radius      *float64     `json:"radius,omitempty" yaml:"radius,omitempty"`
}

// MinCoordinates returns the minimum coordinate count for a geometry kind.
func MinCoordinates(kind GeometryKind) int {
	switch kind {
	case GeometryLine:
		return 2
	case GeometryPolygon:
		return 3
	default:
		return 1
	}
}

// Validate checks the per-kind invariants of the geometry.
func (g Geometry) Validate() error {
	switch g.Kind {
	case GeometryLine, GeometryPolygon:
	case GeometryRectangle:
		if g.Dimensions == nil || !g.Dimensions.Valid() {
			return fmt.Errorf("rectangle geometry requires positive dimensions")
		}
	case GeometryCircle:
		if g.Radius == nil || *g.Radius <= 0 {
			return fmt.Errorf("circle geometry requires a positive radius")
		}
	default:
		return fmt.Errorf("unknown geometry kind %q", g.Kind)
	}
	if n, min := len(g.Coordinates), MinCoordinates(g.Kind); n < min {
		return fmt.Errorf("%s geometry needs at least %d coordinates, got %d", g.Kind, min, n)
	}
	return nil
}

// Clone returns a deep copy of the geometry.
func (g Geometry) Clone() Geometry {
	out := Geometry{Kind: g.Kind}
	if g.Coordinates != nil {
		out.Coordinates = append([]Point(nil), g.Coordinates...)
	}
	if g.Dimensions != nil {
		d := *g.Dimensions
		out.Dimensions = &d
	}
	if g.Radius != nil {
		r := *g.Radius
		out.Radius = &r
	}
	return out
}
