package geometry

import (
	"math"

	"github.com/alexanderramin/plancad/internal/domain"
)

// WallPolygon returns the quadrilateral outline of a wall running from start
// to end. The points are ordered start+n, end+n, end-n, start-n where n is
// the unit normal scaled by thickness/2, so the outline never self-intersects.
// A zero-length wall collapses to four copies of start.
func WallPolygon(start, end domain.Point, thickness float64) []domain.Point {
	dx := end.X - start.X
	dy := end.Y - start.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return []domain.Point{start, start, start, start}
	}

	half := thickness / 2
	n := domain.Point{X: -dy / length * half, Y: dx / length * half}

	return []domain.Point{
		{X: start.X + n.X, Y: start.Y + n.Y},
		{X: end.X + n.X, Y: end.Y + n.Y},
		{X: end.X - n.X, Y: end.Y - n.Y},
		{X: start.X - n.X, Y: start.Y - n.Y},
	}
}
