package script

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/alexanderramin/plancad/internal/command"
	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/geometry"
	"github.com/google/uuid"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// recorder accumulates the commands and logs of one run.
type recorder struct {
	interp *Starlark
	cmds   []command.Command
	logs   []string
}

// module builds the cad module. Every pipeline command in the catalog
// becomes a function under its script name; create and copy functions
// return the id of the shape they will create.
func (r *recorder) module(env Env) *starlarkstruct.Module {
	members := starlark.StringDict{
		"selected":      stringTuple(env.Selected),
		"shape_ids":     stringTuple(env.ShapeIDs),
		"log":           starlark.NewBuiltin("log", r.log),
		"distance":      starlark.NewBuiltin("distance", distance),
		"polygon_area":  starlark.NewBuiltin("polygon_area", polygonArea),
		"snap_to_grid":  starlark.NewBuiltin("snap_to_grid", snapToGrid),
		"convert_units": starlark.NewBuiltin("convert_units", convertUnits),
	}
	for _, spec := range command.Commands() {
		members[spec.Function] = r.commandBuiltin(spec)
	}
	return &starlarkstruct.Module{Name: "cad", Members: members}
}

func (r *recorder) commandBuiltin(spec command.Spec) *starlark.Builtin {
	returnsID := spec.Category == command.CategoryDrawing || spec.Name == command.CopyShape

	return starlark.NewBuiltin(spec.Function, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		line, col := callerPosition(thread)

		values := make([]starlark.Value, len(spec.Parameters))
		pairs := make([]any, 0, 2*len(spec.Parameters))
		for i, p := range spec.Parameters {
			name := p.Name
			if !p.Required {
				name += "?"
			}
			pairs = append(pairs, name, &values[i])
		}
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, pairs...); err != nil {
			return nil, &domain.ScriptError{Kind: domain.ErrorValidation, Message: err.Error(), Line: line, Column: col}
		}

		params := make(map[string]any, len(spec.Parameters))
		for i, p := range spec.Parameters {
			v := values[i]
			if v == nil || v == starlark.None {
				continue
			}
			gv, err := fromStarlark(p, v)
			if err != nil {
				return nil, &domain.ScriptError{
					Kind:    domain.ErrorValidation,
					Message: fmt.Sprintf("%s: parameter %q: %v", spec.Function, p.Name, err),
					Line:    line,
					Column:  col,
				}
			}
			params[p.Name] = gv
		}

		var id string
		if returnsID {
			if preset, ok := params["id"].(string); ok && preset != "" {
				id = preset
			} else {
				id = r.interp.newID()
				params["id"] = id
			}
		}

		cmd := command.Command{Name: spec.Name, Params: params, Line: line}
		if r.interp.Validator != nil {
			if err := r.interp.Validator.ValidateOne(cmd); err != nil {
				if se, ok := domain.AsScriptError(err); ok && se.Column == 0 {
					se.Column = col
				}
				return nil, err
			}
		}
		r.cmds = append(r.cmds, cmd)

		if returnsID {
			return starlark.String(id), nil
		}
		return starlark.None, nil
	})
}

func (s *Starlark) newID() string {
	if s.NewID == nil {
		return uuid.NewString()
	}
	return s.NewID()
}

func (r *recorder) log(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var msg starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "message", &msg); err != nil {
		return nil, err
	}
	if s, ok := starlark.AsString(msg); ok {
		r.logs = append(r.logs, s)
	} else {
		r.logs = append(r.logs, msg.String())
	}
	return starlark.None, nil
}

func distance(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var a, c starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "p1", &a, "p2", &c); err != nil {
		return nil, err
	}
	p, err := toPoint(a)
	if err != nil {
		return nil, fmt.Errorf("%s: p1: %w", b.Name(), err)
	}
	q, err := toPoint(c)
	if err != nil {
		return nil, fmt.Errorf("%s: p2: %w", b.Name(), err)
	}
	return starlark.Float(geometry.Distance(p, q)), nil
}

func polygonArea(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var v starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "vertices", &v); err != nil {
		return nil, err
	}
	pts, err := toPoints(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return starlark.Float(geometry.PolygonArea(pts)), nil
}

func snapToGrid(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var v, grid starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "point", &v, "grid_size", &grid); err != nil {
		return nil, err
	}
	p, err := toPoint(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	size, ok := starlark.AsFloat(grid)
	if !ok {
		return nil, fmt.Errorf("%s: grid_size must be a number, got %s", b.Name(), grid.Type())
	}
	return pointTuple(geometry.SnapToGrid(p, size)), nil
}

func convertUnits(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var v starlark.Value
	var from, to string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "value", &v, "from_unit", &from, "to_unit", &to); err != nil {
		return nil, err
	}
	f, ok := starlark.AsFloat(v)
	if !ok {
		return nil, fmt.Errorf("%s: value must be a number, got %s", b.Name(), v.Type())
	}
	out, err := geometry.ConvertUnits(f, domain.Units(from), domain.Units(to))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return starlark.Float(out), nil
}

func fromStarlark(p command.Parameter, v starlark.Value) (any, error) {
	if p.Repeated {
		if p.Type != command.ParamPoint {
			return nil, fmt.Errorf("unsupported list parameter type %s", p.Type)
		}
		return toPoints(v)
	}
	switch p.Type {
	case command.ParamPoint:
		return toPoint(v)
	case command.ParamNumber:
		f, ok := starlark.AsFloat(v)
		if !ok {
			return nil, fmt.Errorf("expected a number, got %s", v.Type())
		}
		return f, nil
	default:
		s, ok := starlark.AsString(v)
		if !ok {
			return nil, fmt.Errorf("expected a string, got %s", v.Type())
		}
		return s, nil
	}
}

// toPoint accepts (x, y) tuples or lists and {"x": .., "y": ..} dicts.
func toPoint(v starlark.Value) (domain.Point, error) {
	switch p := v.(type) {
	case starlark.Indexable:
		if _, isString := v.(starlark.String); isString || p.Len() != 2 {
			break
		}
		x, xok := starlark.AsFloat(p.Index(0))
		y, yok := starlark.AsFloat(p.Index(1))
		if !xok || !yok {
			return domain.Point{}, fmt.Errorf("point coordinates must be numbers")
		}
		return domain.Point{X: x, Y: y}, nil
	case *starlark.Dict:
		xv, xfound, _ := p.Get(starlark.String("x"))
		yv, yfound, _ := p.Get(starlark.String("y"))
		if xfound && yfound {
			x, xok := starlark.AsFloat(xv)
			y, yok := starlark.AsFloat(yv)
			if xok && yok {
				return domain.Point{X: x, Y: y}, nil
			}
		}
		return domain.Point{}, fmt.Errorf("point dict needs numeric x and y")
	}
	return domain.Point{}, fmt.Errorf("expected a point (x, y), got %s", v.Type())
}

func toPoints(v starlark.Value) ([]domain.Point, error) {
	iterable, ok := v.(starlark.Iterable)
	if !ok {
		return nil, fmt.Errorf("expected a list of points, got %s", v.Type())
	}
	it := iterable.Iterate()
	defer it.Done()

	var pts []domain.Point
	var item starlark.Value
	for i := 0; it.Next(&item); i++ {
		p, err := toPoint(item)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		pts = append(pts, p)
	}
	return pts, nil
}

func pointTuple(p domain.Point) starlark.Tuple {
	return starlark.Tuple{starlark.Float(p.X), starlark.Float(p.Y)}
}

func stringTuple(items []string) starlark.Tuple {
	t := make(starlark.Tuple, len(items))
	for i, s := range items {
		t[i] = starlark.String(s)
	}
	return t
}

// toStarlark converts a decoded JSON or YAML value into a Starlark value.
// Whole numbers become ints so they work with range() and indexing.
func toStarlark(v any) (starlark.Value, error) {
	switch x := v.(type) {
	case nil:
		return starlark.None, nil
	case bool:
		return starlark.Bool(x), nil
	case string:
		return starlark.String(x), nil
	case int:
		return starlark.MakeInt(x), nil
	case int64:
		return starlark.MakeInt64(x), nil
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return starlark.MakeInt64(int64(x)), nil
		}
		return starlark.Float(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return starlark.MakeInt64(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, err
		}
		return starlark.Float(f), nil
	case domain.Point:
		return pointTuple(x), nil
	case []string:
		return starlark.NewList([]starlark.Value(stringTuple(x))), nil
	case []any:
		elems := make([]starlark.Value, len(x))
		for i, e := range x {
			sv, err := toStarlark(e)
			if err != nil {
				return nil, err
			}
			elems[i] = sv
		}
		return starlark.NewList(elems), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		d := starlark.NewDict(len(x))
		for _, k := range keys {
			sv, err := toStarlark(x[k])
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(starlark.String(k), sv); err != nil {
				return nil, err
			}
		}
		return d, nil
	}
	return nil, fmt.Errorf("unsupported value of type %T", v)
}
