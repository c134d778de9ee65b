package geometry

import (
	"math"

	"github.com/alexanderramin/plancad/internal/domain"
)

// DoorArcSegments is the number of segments in a door swing polyline.
const DoorArcSegments = 20

// DoorArc approximates the quarter-circle swing of a door leaf hinged at
// position. The arc has radius width and DoorArcSegments+1 points swept from
// 0 to 90 degrees; a left door opens toward +x, a right door is mirrored
// across the vertical axis through position.
func DoorArc(position domain.Point, width float64, direction domain.DoorDirection) []domain.Point {
	sign := 1.0
	if direction == domain.DoorRight {
		sign = -1
	}

	points := make([]domain.Point, 0, DoorArcSegments+1)
	for i := 0; i <= DoorArcSegments; i++ {
		angle := float64(i) / DoorArcSegments * (math.Pi / 2)
		points = append(points, domain.Point{
			X: position.X + sign*width*math.Cos(angle),
			Y: position.Y - width*math.Sin(angle),
		})
	}
	return points
}
