package geometry

import (
	"fmt"
	"math"

	"github.com/alexanderramin/plancad/internal/domain"
)

// Epsilon is the tolerance used for floating point comparisons.
const Epsilon = 1e-9

// Distance returns the Euclidean distance between p and q.
func Distance(p, q domain.Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// SnapToGrid rounds each axis of p to the nearest multiple of gridSize.
// A non-positive grid size leaves the point unchanged.
func SnapToGrid(p domain.Point, gridSize float64) domain.Point {
	if gridSize <= 0 {
		return p
	}
	return domain.Point{
		X: math.Round(p.X/gridSize) * gridSize,
		Y: math.Round(p.Y/gridSize) * gridSize,
	}
}

var millimetersPer = map[domain.Units]float64{
	domain.UnitsMillimeter: 1,
	domain.UnitsCentimeter: 10,
	domain.UnitsMeter:      1000,
}

// ConvertUnits converts value between mm, cm and m through millimeters.
func ConvertUnits(value float64, from, to domain.Units) (float64, error) {
	fromMM, ok := millimetersPer[from]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", from)
	}
	toMM, ok := millimetersPer[to]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", to)
	}
	return value * fromMM / toMM, nil
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}
