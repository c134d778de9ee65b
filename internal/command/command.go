package command

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/plancad/internal/domain"
)

// Pipeline command names.
const (
	CreateWall      = "create_wall"
	CreateColumn    = "create_column"
	CreateDoor      = "create_door"
	CreateFixture   = "create_fixture"
	CreateEquipment = "create_equipment"
	CreateArea      = "create_area"
	MoveShape       = "move_shape"
	DeleteShape     = "delete_shape"
	CopyShape       = "copy_shape"
	AddLabel        = "add_label"
	RotateShape     = "rotate_shape"
)

// Command is one instruction for the mutation pipeline. Line is the 1-based
// script line that produced it, or zero when the command did not come from a
// script.
type Command struct {
	Name   string         `json:"name" yaml:"name"`
	Params map[string]any `json:"params" yaml:"params"`
	Line   int            `json:"line,omitempty" yaml:"line,omitempty"`
}

// New builds a command with the given parameters.
func New(name string, params map[string]any) Command {
	if params == nil {
		params = map[string]any{}
	}
	return Command{Name: name, Params: params}
}

// AtLine returns a copy of c attributed to a script line.
func (c Command) AtLine(line int) Command {
	c.Line = line
	return c
}

// Has reports whether the parameter is present and non-nil.
func (c Command) Has(key string) bool {
	v, ok := c.Params[key]
	return ok && v != nil
}

// Number returns a required numeric parameter.
func (c Command) Number(key string) (float64, error) {
	v, ok := c.Params[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("%s: missing parameter %q", c.Name, key)
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, fmt.Errorf("%s: parameter %q must be a number, got %T", c.Name, key, v)
	}
	return f, nil
}

// NumberOr returns a numeric parameter, or fallback when it is absent.
func (c Command) NumberOr(key string, fallback float64) (float64, error) {
	if !c.Has(key) {
		return fallback, nil
	}
	return c.Number(key)
}

// String returns a required string parameter.
func (c Command) String(key string) (string, error) {
	v, ok := c.Params[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%s: missing parameter %q", c.Name, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: parameter %q must be a string, got %T", c.Name, key, v)
	}
	return s, nil
}

// StringOr returns a string parameter, or fallback when it is absent.
func (c Command) StringOr(key, fallback string) (string, error) {
	if !c.Has(key) {
		return fallback, nil
	}
	return c.String(key)
}

// Point returns a required point parameter. Points may be given as
// domain.Point, an {x, y} map or a two element array.
func (c Command) Point(key string) (domain.Point, error) {
	v, ok := c.Params[key]
	if !ok || v == nil {
		return domain.Point{}, fmt.Errorf("%s: missing parameter %q", c.Name, key)
	}
	p, err := toPoint(v)
	if err != nil {
		return domain.Point{}, fmt.Errorf("%s: parameter %q: %w", c.Name, key, err)
	}
	return p, nil
}

// OptionalPoint returns nil when the parameter is absent.
func (c Command) OptionalPoint(key string) (*domain.Point, error) {
	if !c.Has(key) {
		return nil, nil
	}
	p, err := c.Point(key)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Points returns a required list of points.
func (c Command) Points(key string) ([]domain.Point, error) {
	v, ok := c.Params[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("%s: missing parameter %q", c.Name, key)
	}

	var items []any
	switch list := v.(type) {
	case []domain.Point:
		return append([]domain.Point(nil), list...), nil
	case []any:
		items = list
	case [][]float64:
		for _, p := range list {
			items = append(items, p)
		}
	case []map[string]any:
		for _, p := range list {
			items = append(items, p)
		}
	default:
		return nil, fmt.Errorf("%s: parameter %q must be a list of points, got %T", c.Name, key, v)
	}

	out := make([]domain.Point, 0, len(items))
	for i, item := range items {
		p, err := toPoint(item)
		if err != nil {
			return nil, fmt.Errorf("%s: parameter %q[%d]: %w", c.Name, key, i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func toPoint(v any) (domain.Point, error) {
	switch p := v.(type) {
	case domain.Point:
		return p, nil
	case *domain.Point:
		if p == nil {
			return domain.Point{}, fmt.Errorf("nil point")
		}
		return *p, nil
	case map[string]any:
		x, xok := toFloat(p["x"])
		y, yok := toFloat(p["y"])
		if !xok || !yok {
			return domain.Point{}, fmt.Errorf("point needs numeric x and y")
		}
		return domain.Point{X: x, Y: y}, nil
	case map[string]float64:
		x, xok := p["x"]
		y, yok := p["y"]
		if !xok || !yok {
			return domain.Point{}, fmt.Errorf("point needs x and y")
		}
		return domain.Point{X: x, Y: y}, nil
	case []float64:
		if len(p) != 2 {
			return domain.Point{}, fmt.Errorf("point needs 2 coordinates, got %d", len(p))
		}
		return domain.Point{X: p[0], Y: p[1]}, nil
	case []any:
		if len(p) != 2 {
			return domain.Point{}, fmt.Errorf("point needs 2 coordinates, got %d", len(p))
		}
		x, xok := toFloat(p[0])
		y, yok := toFloat(p[1])
		if !xok || !yok {
			return domain.Point{}, fmt.Errorf("point coordinates must be numbers")
		}
		return domain.Point{X: x, Y: y}, nil
	}
	return domain.Point{}, fmt.Errorf("expected a point, got %T", v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
