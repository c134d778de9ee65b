// Package pipeline folds an ordered command list into a new drawing
// snapshot. Application is all-or-nothing: on any failure the caller gets a
// runtime *domain.ScriptError and no drawing.
package pipeline

import (
	"fmt"
	"time"

	"github.com/alexanderramin/plancad/internal/command"
	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/drawing"
	"github.com/alexanderramin/plancad/internal/geometry"
	"github.com/samber/lo"
)

// Result is the outcome of a successful Apply. CreatedIDs lists the id of
// every shape created by the batch, in command order.
type Result struct {
	Drawing    *domain.Drawing
	CreatedIDs []string
}

type config struct {
	factory *geometry.Factory
	now     func() time.Time
}

type Option func(*config)

// WithFactory sets the shape factory, mainly to control id generation.
func WithFactory(f *geometry.Factory) Option {
	return func(c *config) { c.factory = f }
}

// WithClock sets the time source for UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// state is the fold accumulator.
type state struct {
	shapes  []domain.Shape
	created []string
	locked  map[string]string
}

// Apply applies cmds to d in order and returns the new drawing. d is never
// modified.
func Apply(d *domain.Drawing, cmds []command.Command, opts ...Option) (*Result, error) {
	cfg := config{factory: geometry.NewFactory(), now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	acc := state{
		shapes: domain.CloneShapes(d.Shapes),
		locked: drawing.LockedShapes(d),
	}
	for _, c := range cmds {
		next, err := step(cfg.factory, acc, c)
		if err != nil {
			return nil, toScriptError(c, err)
		}
		acc = next
	}

	return &Result{
		Drawing:    drawing.WithShapes(d, acc.shapes, cfg.now()),
		CreatedIDs: acc.created,
	}, nil
}

func step(f *geometry.Factory, acc state, c command.Command) (state, error) {
	switch c.Name {
	case command.CreateWall, command.CreateColumn, command.CreateDoor,
		command.CreateFixture, command.CreateEquipment, command.CreateArea:
		s, err := create(f, c)
		if err != nil {
			return acc, err
		}
		if err := acc.checkUnique(s.ID); err != nil {
			return acc, err
		}
		acc.shapes = append(acc.shapes, s)
		acc.created = append(acc.created, s.ID)
		return acc, nil

	case command.MoveShape:
		id, err := c.String("shape_id")
		if err != nil {
			return acc, err
		}
		dx, err := c.Number("delta_x")
		if err != nil {
			return acc, err
		}
		dy, err := c.Number("delta_y")
		if err != nil {
			return acc, err
		}
		if err := acc.checkUnlocked(id); err != nil {
			return acc, err
		}
		acc.shapes = replace(acc.shapes, id, func(s domain.Shape) domain.Shape {
			return geometry.Translate(s, dx, dy)
		})
		return acc, nil

	case command.RotateShape:
		id, err := c.String("shape_id")
		if err != nil {
			return acc, err
		}
		angle, err := c.Number("angle")
		if err != nil {
			return acc, err
		}
		center, err := c.OptionalPoint("center")
		if err != nil {
			return acc, err
		}
		if err := acc.checkUnlocked(id); err != nil {
			return acc, err
		}
		acc.shapes = replace(acc.shapes, id, func(s domain.Shape) domain.Shape {
			return geometry.Rotate(s, angle, center)
		})
		return acc, nil

	case command.DeleteShape:
		id, err := c.String("shape_id")
		if err != nil {
			return acc, err
		}
		if err := acc.checkUnlocked(id); err != nil {
			return acc, err
		}
		acc.shapes = lo.Reject(acc.shapes, func(s domain.Shape, _ int) bool { return s.ID == id })
		return acc, nil

	case command.CopyShape:
		id, err := c.String("shape_id")
		if err != nil {
			return acc, err
		}
		ox, err := c.NumberOr("offset_x", geometry.DefaultCopyOffset)
		if err != nil {
			return acc, err
		}
		oy, err := c.NumberOr("offset_y", geometry.DefaultCopyOffset)
		if err != nil {
			return acc, err
		}
		preset, err := c.StringOr("id", "")
		if err != nil {
			return acc, err
		}
		src, ok := lo.Find(acc.shapes, func(s domain.Shape) bool { return s.ID == id })
		if !ok {
			return acc, nil
		}
		cp := f.Copy(preset, src, domain.Point{X: ox, Y: oy})
		if err := acc.checkUnique(cp.ID); err != nil {
			return acc, err
		}
		acc.shapes = append(acc.shapes, cp)
		acc.created = append(acc.created, cp.ID)
		return acc, nil

	case command.AddLabel:
		id, err := c.String("shape_id")
		if err != nil {
			return acc, err
		}
		text, err := c.String("text")
		if err != nil {
			return acc, err
		}
		if err := acc.checkUnlocked(id); err != nil {
			return acc, err
		}
		acc.shapes = replace(acc.shapes, id, func(s domain.Shape) domain.Shape {
			return s.WithLabel(text)
		})
		return acc, nil
	}
	return acc, fmt.Errorf("unknown command %q", c.Name)
}

// replace maps fn over every shape with the given id into a new slice.
// Unknown ids leave the collection as it was.
func replace(shapes []domain.Shape, id string, fn func(domain.Shape) domain.Shape) []domain.Shape {
	return lo.Map(shapes, func(s domain.Shape, _ int) domain.Shape {
		if s.ID != id {
			return s
		}
		return fn(s)
	})
}

func (acc state) checkUnlocked(id string) error {
	if layer, ok := acc.locked[id]; ok {
		return fmt.Errorf("shape %q is on locked layer %q", id, layer)
	}
	return nil
}

func (acc state) checkUnique(id string) error {
	if lo.ContainsBy(acc.shapes, func(s domain.Shape) bool { return s.ID == id }) {
		return fmt.Errorf("shape id %q already exists", id)
	}
	return nil
}

func toScriptError(c command.Command, err error) error {
	if se, ok := domain.AsScriptError(err); ok {
		if se.Line == 0 {
			se.Line = c.Line
		}
		return se
	}
	return &domain.ScriptError{
		Kind:    domain.ErrorRuntime,
		Message: err.Error(),
		Line:    c.Line,
		Details: fmt.Sprintf("command %s failed", c.Name),
	}
}
