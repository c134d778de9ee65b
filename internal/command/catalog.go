package command

import (
	"slices"

	"github.com/alexanderramin/plancad/internal/geometry"
)

type ParamType string

const (
	ParamNumber ParamType = "number"
	ParamString ParamType = "string"
	ParamPoint  ParamType = "point"
	ParamShape  ParamType = "shape"
)

type Category string

const (
	CategoryDrawing     Category = "drawing"
	CategoryEditing     Category = "editing"
	CategoryCalculation Category = "calculation"
	CategoryFile        Category = "file"
)

// Parameter describes one argument of a command. Repeated marks a list of
// Type values; Positive requires numbers strictly greater than zero.
type Parameter struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"type"`
	Required    bool      `json:"required"`
	Description string    `json:"description"`
	Repeated    bool      `json:"repeated,omitempty"`
	MinItems    int       `json:"minItems,omitempty"`
	Positive    bool      `json:"positive,omitempty"`
	NonEmpty    bool      `json:"nonEmpty,omitempty"`
	Enum        []string  `json:"enum,omitempty"`
	Default     any       `json:"default,omitempty"`
}

// Spec is the catalog entry for one command. Name is the pipeline command
// name and Function the name scripts call it by on the cad module. Helpers
// that never reach the pipeline have Name == Function.
type Spec struct {
	Name        string      `json:"name"`
	Function    string      `json:"function"`
	Category    Category    `json:"category"`
	Parameters  []Parameter `json:"parameters"`
	Description string      `json:"description"`
	Examples    []string    `json:"examples"`
}

// Mutates reports whether the command is folded by the pipeline.
func (s Spec) Mutates() bool {
	return s.Category == CategoryDrawing || s.Category == CategoryEditing
}

// Param returns the named parameter.
func (s Spec) Param(name string) (Parameter, bool) {
	for _, p := range s.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

var idParam = Parameter{
	Name:        "id",
	Type:        ParamString,
	Description: "Identifier for the new shape (generated when omitted)",
}

var catalog = []Spec{
	{
		Name:     CreateWall,
		Function: "draw_wall",
		Category: CategoryDrawing,
		Parameters: []Parameter{
			{Name: "start", Type: ParamPoint, Required: true, Description: "Starting point of the wall"},
			{Name: "end", Type: ParamPoint, Required: true, Description: "Ending point of the wall"},
			{Name: "thickness", Type: ParamNumber, Positive: true, Default: geometry.DefaultWallThickness, Description: "Wall thickness in mm (default: 100)"},
			idParam,
		},
		Description: "Draw a wall between two points",
		Examples:    []string{"cad.draw_wall((0, 0), (1000, 0), 100)"},
	},
	{
		Name:     CreateColumn,
		Function: "draw_column",
		Category: CategoryDrawing,
		Parameters: []Parameter{
			{Name: "center", Type: ParamPoint, Required: true, Description: "Center point of the column"},
			{Name: "width", Type: ParamNumber, Required: true, Positive: true, Description: "Column width in mm"},
			{Name: "height", Type: ParamNumber, Required: true, Positive: true, Description: "Column height in mm"},
			{Name: "shape_type", Type: ParamString, Enum: []string{"rectangular", "circular"}, Default: "rectangular", Description: `Shape type: "rectangular" or "circular"`},
			idParam,
		},
		Description: "Draw a column at the specified position",
		Examples:    []string{`cad.draw_column((500, 500), 200, 200, "rectangular")`},
	},
	{
		Name:     CreateDoor,
		Function: "draw_door",
		Category: CategoryDrawing,
		Parameters: []Parameter{
			{Name: "position", Type: ParamPoint, Required: true, Description: "Door hinge position"},
			{Name: "width", Type: ParamNumber, Positive: true, Default: geometry.DefaultDoorWidth, Description: "Door width in mm (default: 800)"},
			{Name: "direction", Type: ParamString, Enum: []string{"left", "right"}, Default: "left", Description: `Opening direction: "left" or "right"`},
			idParam,
		},
		Description: "Draw a door at the specified position",
		Examples:    []string{`cad.draw_door((900, 0), 800, "right")`},
	},
	{
		Name:     CreateFixture,
		Function: "place_fixture",
		Category: CategoryDrawing,
		Parameters: []Parameter{
			{Name: "position", Type: ParamPoint, Required: true, Description: "Fixture position"},
			{Name: "width", Type: ParamNumber, Required: true, Positive: true, Description: "Fixture width in mm"},
			{Name: "height", Type: ParamNumber, Required: true, Positive: true, Description: "Fixture height in mm"},
			{Name: "fixture_type", Type: ParamString, Required: true, NonEmpty: true, Description: `Type of fixture (e.g., "shelf", "counter")`},
			idParam,
		},
		Description: "Place a fixture (shelf, counter, etc.) at the specified position",
		Examples:    []string{`cad.place_fixture((200, 200), 400, 100, "checkout counter")`},
	},
	{
		Name:     CreateEquipment,
		Function: "place_equipment",
		Category: CategoryDrawing,
		Parameters: []Parameter{
			{Name: "position", Type: ParamPoint, Required: true, Description: "Equipment position"},
			{Name: "width", Type: ParamNumber, Required: true, Positive: true, Description: "Equipment width in mm"},
			{Name: "height", Type: ParamNumber, Required: true, Positive: true, Description: "Equipment height in mm"},
			{Name: "equipment_type", Type: ParamString, Required: true, NonEmpty: true, Description: "Type of equipment"},
			idParam,
		},
		Description: "Place equipment at the specified position",
		Examples:    []string{`cad.place_equipment((1000, 1000), 200, 200, "register")`},
	},
	{
		Name:     CreateArea,
		Function: "create_area",
		Category: CategoryDrawing,
		Parameters: []Parameter{
			{Name: "vertices", Type: ParamPoint, Required: true, Repeated: true, MinItems: 3, Description: "List of vertices defining the area"},
			{Name: "area_type", Type: ParamString, Required: true, NonEmpty: true, Description: `Type of area (e.g., "storage", "seating")`},
			idParam,
		},
		Description: "Create an area with the specified vertices",
		Examples:    []string{`cad.create_area([(1600, 1000), (1900, 1000), (1900, 1400), (1600, 1400)], "storage")`},
	},
	{
		Name:     MoveShape,
		Function: "move_shape",
		Category: CategoryEditing,
		Parameters: []Parameter{
			{Name: "shape_id", Type: ParamShape, Required: true, Description: "ID of the shape to move"},
			{Name: "delta_x", Type: ParamNumber, Required: true, Description: "X-axis movement in mm"},
			{Name: "delta_y", Type: ParamNumber, Required: true, Description: "Y-axis movement in mm"},
		},
		Description: "Move a shape by the specified delta",
		Examples:    []string{`cad.move_shape("shape_id", 100, 50)`},
	},
	{
		Name:     DeleteShape,
		Function: "delete_shape",
		Category: CategoryEditing,
		Parameters: []Parameter{
			{Name: "shape_id", Type: ParamShape, Required: true, Description: "ID of the shape to delete"},
		},
		Description: "Delete a shape",
		Examples:    []string{`cad.delete_shape("shape_id")`},
	},
	{
		Name:     CopyShape,
		Function: "copy_shape",
		Category: CategoryEditing,
		Parameters: []Parameter{
			{Name: "shape_id", Type: ParamShape, Required: true, Description: "ID of the shape to copy"},
			{Name: "offset_x", Type: ParamNumber, Default: geometry.DefaultCopyOffset, Description: "X-axis offset for the copy (default: 50)"},
			{Name: "offset_y", Type: ParamNumber, Default: geometry.DefaultCopyOffset, Description: "Y-axis offset for the copy (default: 50)"},
			{Name: "id", Type: ParamString, Description: "Identifier for the copy (generated when omitted)"},
		},
		Description: "Copy a shape with an offset",
		Examples:    []string{`cad.copy_shape("shape_id", 100, 100)`},
	},
	{
		Name:     AddLabel,
		Function: "add_label",
		Category: CategoryEditing,
		Parameters: []Parameter{
			{Name: "shape_id", Type: ParamShape, Required: true, Description: "ID of the shape to label"},
			{Name: "text", Type: ParamString, Required: true, Description: "Label text"},
		},
		Description: "Add a label to a shape",
		Examples:    []string{`cad.add_label("shape_id", "Checkout Counter")`},
	},
	{
		Name:     RotateShape,
		Function: "rotate_shape",
		Category: CategoryEditing,
		Parameters: []Parameter{
			{Name: "shape_id", Type: ParamShape, Required: true, Description: "ID of the shape to rotate"},
			{Name: "angle", Type: ParamNumber, Required: true, Description: "Counter-clockwise rotation in degrees"},
			{Name: "center", Type: ParamPoint, Description: "Pivot point (default: the shape's centre)"},
		},
		Description: "Rotate a shape around a pivot",
		Examples:    []string{`cad.rotate_shape("shape_id", 90)`},
	},
	{
		Name:     "distance",
		Function: "distance",
		Category: CategoryCalculation,
		Parameters: []Parameter{
			{Name: "p1", Type: ParamPoint, Required: true, Description: "First point"},
			{Name: "p2", Type: ParamPoint, Required: true, Description: "Second point"},
		},
		Description: "Euclidean distance between two points",
		Examples:    []string{"cad.distance((0, 0), (3000, 4000))"},
	},
	{
		Name:     "polygon_area",
		Function: "polygon_area",
		Category: CategoryCalculation,
		Parameters: []Parameter{
			{Name: "vertices", Type: ParamPoint, Required: true, Repeated: true, MinItems: 3, Description: "Polygon vertices"},
		},
		Description: "Area enclosed by a polygon",
		Examples:    []string{"cad.polygon_area([(0, 0), (1000, 0), (1000, 1000), (0, 1000)])"},
	},
	{
		Name:     "snap_to_grid",
		Function: "snap_to_grid",
		Category: CategoryCalculation,
		Parameters: []Parameter{
			{Name: "point", Type: ParamPoint, Required: true, Description: "Point to snap"},
			{Name: "grid_size", Type: ParamNumber, Required: true, Positive: true, Description: "Grid spacing in mm"},
		},
		Description: "Round a point to the nearest grid intersection",
		Examples:    []string{"cad.snap_to_grid((123, 478), 50)"},
	},
	{
		Name:     "convert_units",
		Function: "convert_units",
		Category: CategoryCalculation,
		Parameters: []Parameter{
			{Name: "value", Type: ParamNumber, Required: true, Description: "Value to convert"},
			{Name: "from_unit", Type: ParamString, Required: true, Enum: []string{"mm", "cm", "m"}, Description: "Source unit"},
			{Name: "to_unit", Type: ParamString, Required: true, Enum: []string{"mm", "cm", "m"}, Description: "Target unit"},
		},
		Description: "Convert a length between mm, cm and m",
		Examples:    []string{`cad.convert_units(2.5, "m", "mm")`},
	},
	{
		Name:     "log",
		Function: "log",
		Category: CategoryFile,
		Parameters: []Parameter{
			{Name: "message", Type: ParamString, Required: true, Description: "Message to append to the execution log"},
		},
		Description: "Append a message to the execution log",
		Examples:    []string{`cad.log("layout complete")`},
	},
}

// Catalog returns every command in stable order. The result is a copy and
// may be modified by the caller.
func Catalog() []Spec {
	out := make([]Spec, len(catalog))
	for i, s := range catalog {
		out[i] = cloneSpec(s)
	}
	return out
}

// Commands returns only the entries the pipeline applies.
func Commands() []Spec {
	var out []Spec
	for _, s := range catalog {
		if s.Mutates() {
			out = append(out, cloneSpec(s))
		}
	}
	return out
}

// Lookup finds a catalog entry by command name.
func Lookup(name string) (Spec, bool) {
	for _, s := range catalog {
		if s.Name == name {
			return cloneSpec(s), true
		}
	}
	return Spec{}, false
}

// LookupFunction finds a catalog entry by its script function name.
func LookupFunction(fn string) (Spec, bool) {
	for _, s := range catalog {
		if s.Function == fn {
			return cloneSpec(s), true
		}
	}
	return Spec{}, false
}

func cloneSpec(s Spec) Spec {
	s.Parameters = slices.Clone(s.Parameters)
	for i := range s.Parameters {
		s.Parameters[i].Enum = slices.Clone(s.Parameters[i].Enum)
	}
	s.Examples = slices.Clone(s.Examples)
	return s
}
