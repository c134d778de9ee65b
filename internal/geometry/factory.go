package geometry

import (
	"fmt"

	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/google/uuid"
)

// Default parameters used when a creation command omits them.
const (
	DefaultWallThickness = 100.0
	DefaultDoorWidth     = 800.0
	DefaultCopyOffset    = 50.0
)

// Factory builds shape records. NewID supplies identities for shapes whose
// caller did not preassign one.
type Factory struct {
	NewID func() string
}

// NewFactory returns a Factory that assigns random UUIDs.
func NewFactory() *Factory {
	return &Factory{NewID: uuid.NewString}
}

func (f *Factory) id(preset string) string {
	if preset != "" {
		return preset
	}
	if f == nil || f.NewID == nil {
		return uuid.NewString()
	}
	return f.NewID()
}

var (
	structureStroke = "#333333"

	wallStyle = domain.RenderStyle{
		StrokeColor: structureStroke, FillColor: "#cccccc",
		StrokeWidth: 2, LineStyle: domain.LineSolid, Opacity: 1,
	}
	columnStyle = domain.RenderStyle{
		StrokeColor: structureStroke, FillColor: "#999999",
		StrokeWidth: 2, LineStyle: domain.LineSolid, Opacity: 1,
	}
	doorStyle = domain.RenderStyle{
		StrokeColor: "#666666", StrokeWidth: 2, LineStyle: domain.LineSolid, Opacity: 1,
	}
	fixtureStyle = domain.RenderStyle{
		StrokeColor: "#0066cc", FillColor: "#e6f2ff",
		StrokeWidth: 2, LineStyle: domain.LineSolid, Opacity: 0.8,
	}
	equipmentStyle = domain.RenderStyle{
		StrokeColor: "#cc6600", FillColor: "#fff2e6",
		StrokeWidth: 2, LineStyle: domain.LineSolid, Opacity: 0.8,
	}
	areaStyle = domain.RenderStyle{
		StrokeColor: "#009900", FillColor: "#e6ffe6",
		StrokeWidth: 2, LineStyle: domain.LineDashed, Opacity: 0.3,
	}
)

// DefaultStyle returns the render style a newly created shape of type t gets.
func DefaultStyle(t domain.ShapeType) domain.RenderStyle {
	switch t {
	case domain.ShapeWall:
		return wallStyle
	case domain.ShapeColumn:
		return columnStyle
	case domain.ShapeDoor:
		return doorStyle
	case domain.ShapeFixture:
		return fixtureStyle
	case domain.ShapeEquipment:
		return equipmentStyle
	case domain.ShapeArea:
		return areaStyle
	}
	return domain.RenderStyle{}
}

// Wall builds a wall whose geometry is the polygon outline from start to end.
func (f *Factory) Wall(id string, start, end domain.Point, thickness float64) (domain.Shape, error) {
	if thickness <= 0 {
		return domain.Shape{}, fmt.Errorf("wall thickness must be positive, got %g", thickness)
	}
	return domain.Shape{
		ID:   f.id(id),
		Type: domain.ShapeWall,
		Geometry: domain.Geometry{
			Kind:        domain.GeometryPolygon,
			Coordinates: WallPolygon(start, end, thickness),
		},
		Properties: domain.ShapeProperties{
			Name:     "Wall",
			Category: "structure",
			Metadata: map[string]any{"thickness": thickness},
		},
		Style: wallStyle,
	}, nil
}

// Column builds a rectangular column centred on center, or a circular one
// whose diameter is dims.Width.
func (f *Factory) Column(id string, center domain.Point, dims domain.Dimensions, profile domain.ColumnProfile) (domain.Shape, error) {
	if !dims.Valid() {
		return domain.Shape{}, fmt.Errorf("column dimensions must be positive, got %gx%g", dims.Width, dims.Height)
	}
	if profile == "" {
		profile = domain.ColumnRectangular
	}

	s := domain.Shape{
		ID:   f.id(id),
		Type: domain.ShapeColumn,
		Properties: domain.ShapeProperties{
			Name:     "Column",
			Category: "structure",
			Metadata: map[string]any{"type": string(profile)},
		},
		Style: columnStyle,
	}

	switch profile {
	case domain.ColumnCircular:
		s.Geometry = domain.Geometry{
			Kind:        domain.GeometryCircle,
			Coordinates: []domain.Point{center},
			Radius:      domain.Float64Ptr(dims.Width / 2),
		}
	case domain.ColumnRectangular:
		d := dims
		s.Geometry = domain.Geometry{
			Kind: domain.GeometryRectangle,
			Coordinates: []domain.Point{{
				X: center.X - dims.Width/2,
				Y: center.Y - dims.Height/2,
			}},
			Dimensions: &d,
		}
	default:
		return domain.Shape{}, fmt.Errorf("unknown column profile %q", profile)
	}
	return s, nil
}

// Door builds the swing arc of a door hinged at position.
func (f *Factory) Door(id string, position domain.Point, width float64, direction domain.DoorDirection) (domain.Shape, error) {
	if width <= 0 {
		return domain.Shape{}, fmt.Errorf("door width must be positive, got %g", width)
	}
	if direction == "" {
		direction = domain.DoorLeft
	}
	if direction != domain.DoorLeft && direction != domain.DoorRight {
		return domain.Shape{}, fmt.Errorf("door direction must be left or right, got %q", direction)
	}
	return domain.Shape{
		ID:   f.id(id),
		Type: domain.ShapeDoor,
		Geometry: domain.Geometry{
			Kind:        domain.GeometryLine,
			Coordinates: DoorArc(position, width, direction),
		},
		Properties: domain.ShapeProperties{
			Name:     "Door",
			Category: "structure",
			Metadata: map[string]any{"width": width, "openingDirection": string(direction)},
		},
		Style: doorStyle,
	}, nil
}

// Fixture builds a rectangular fixture (shelf, counter, ...) anchored at position.
func (f *Factory) Fixture(id string, position domain.Point, dims domain.Dimensions, fixtureType string) (domain.Shape, error) {
	return f.placed(id, domain.ShapeFixture, "fixture", "fixtureType", position, dims, fixtureType)
}

// Equipment builds a rectangular piece of equipment anchored at position.
func (f *Factory) Equipment(id string, position domain.Point, dims domain.Dimensions, equipmentType string) (domain.Shape, error) {
	return f.placed(id, domain.ShapeEquipment, "equipment", "equipmentType", position, dims, equipmentType)
}

func (f *Factory) placed(id string, t domain.ShapeType, category, key string, position domain.Point, dims domain.Dimensions, kind string) (domain.Shape, error) {
	if !dims.Valid() {
		return domain.Shape{}, fmt.Errorf("%s dimensions must be positive, got %gx%g", t, dims.Width, dims.Height)
	}
	if kind == "" {
		return domain.Shape{}, fmt.Errorf("%s type is required", t)
	}
	d := dims
	return domain.Shape{
		ID:   f.id(id),
		Type: t,
		Geometry: domain.Geometry{
			Kind:        domain.GeometryRectangle,
			Coordinates: []domain.Point{position},
			Dimensions:  &d,
		},
		Properties: domain.ShapeProperties{
			Name:     kind,
			Category: category,
			Metadata: map[string]any{key: kind},
		},
		Style: DefaultStyle(t),
	}, nil
}

// Area builds a polygonal zone from its vertices.
func (f *Factory) Area(id string, vertices []domain.Point, areaType string) (domain.Shape, error) {
	if len(vertices) < domain.MinCoordinates(domain.GeometryPolygon) {
		return domain.Shape{}, fmt.Errorf("area needs at least 3 vertices, got %d", len(vertices))
	}
	if areaType == "" {
		return domain.Shape{}, fmt.Errorf("area type is required")
	}
	return domain.Shape{
		ID:   f.id(id),
		Type: domain.ShapeArea,
		Geometry: domain.Geometry{
			Kind:        domain.GeometryPolygon,
			Coordinates: append([]domain.Point(nil), vertices...),
		},
		Properties: domain.ShapeProperties{
			Name:     areaType,
			Category: "area",
			Metadata: map[string]any{"areaType": areaType},
		},
		Style: areaStyle,
	}, nil
}

// Copy returns a translated clone of s with a fresh identity.
func (f *Factory) Copy(id string, s domain.Shape, offset domain.Point) domain.Shape {
	out := Translate(s, offset.X, offset.Y)
	out.ID = f.id(id)
	return out
}
