package domain

type GeometryKind string

const (
	GeometryLine      GeometryKind = "line"
	GeometryRectangle GeometryKind = "rectangle"
	GeometryCircle    GeometryKind = "circle"
	GeometryPolygon   GeometryKind = "polygon"
)

type ShapeType string

const (
	ShapeWall      ShapeType = "wall"
	ShapeColumn    ShapeType = "column"
	ShapeFixture   ShapeType = "fixture"
	ShapeEquipment ShapeType = "equipment"
	ShapeArea      ShapeType = "area"
	ShapeDoor      ShapeType = "door"
)

// ValidShapeTypes is the canonical set of accepted shape type strings.
var ValidShapeTypes = map[ShapeType]bool{
	ShapeWall: true, ShapeColumn: true, ShapeFixture: true,
	ShapeEquipment: true, ShapeArea: true, ShapeDoor: true,
}

type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
	LineDotted LineStyle = "dotted"
)

type Units string

const (
	UnitsMillimeter Units = "mm"
	UnitsCentimeter Units = "cm"
	UnitsMeter      Units = "m"
)

// ValidUnits is the canonical set of accepted drawing units.
var ValidUnits = map[Units]bool{
	UnitsMillimeter: true, UnitsCentimeter: true, UnitsMeter: true,
}

// ParseUnits resolves a unit string, defaulting to millimeters when empty.
func ParseUnits(s string) (Units, bool) {
	if s == "" {
		return UnitsMillimeter, true
	}
	u := Units(s)
	return u, ValidUnits[u]
}

type DoorDirection string

const (
	DoorLeft  DoorDirection = "left"
	DoorRight DoorDirection = "right"
)

type ColumnProfile string

const (
	ColumnRectangular ColumnProfile = "rectangular"
	ColumnCircular    ColumnProfile = "circular"
)
