package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/drawing"
	"github.com/alexanderramin/plancad/internal/geometry"
	"github.com/google/uuid"
)

var testShapeCounter atomic.Int64

// Fixed is the creation time used by fixtures.
var Fixed = time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

func nextShapeID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, testShapeCounter.Add(1))
}

// Drawing options
type DrawingOption func(*domain.Drawing)

func WithUnits(u domain.Units) DrawingOption {
	return func(d *domain.Drawing) {
		d.Metadata.Units = u
	}
}

func WithShapes(shapes ...domain.Shape) DrawingOption {
	return func(d *domain.Drawing) {
		d.Shapes = append(d.Shapes, shapes...)
	}
}

// WithLayer adds a layer holding the given shape ids.
func WithLayer(name string, locked bool, shapeIDs ...string) DrawingOption {
	return func(d *domain.Drawing) {
		d.Metadata.Layers = append(d.Metadata.Layers, domain.Layer{
			ID:      uuid.NewString(),
			Name:    name,
			Visible: true,
			Locked:  locked,
			Shapes:  append([]string{}, shapeIDs...),
		})
	}
}

// NewTestDrawing returns a refreshed drawing; bounds always match the shapes.
func NewTestDrawing(name string, opts ...DrawingOption) *domain.Drawing {
	d := drawing.New(name, domain.UnitsMillimeter, Fixed)
	for _, opt := range opts {
		opt(d)
	}
	return drawing.Refresh(d)
}

var factory = &geometry.Factory{NewID: func() string { return nextShapeID("shape") }}

// NewTestWall returns a 100 mm wall. An empty id is generated.
func NewTestWall(id string, start, end domain.Point) domain.Shape {
	s, err := factory.Wall(id, start, end, geometry.DefaultWallThickness)
	if err != nil {
		panic(err)
	}
	return s
}

// NewTestFixture returns a shelf fixture. An empty id is generated.
func NewTestFixture(id string, at domain.Point, width, height float64) domain.Shape {
	s, err := factory.Fixture(id, at, domain.Dimensions{Width: width, Height: height}, "shelf")
	if err != nil {
		panic(err)
	}
	return s
}

// Script run options
type RunOption func(*domain.ScriptRun)

func WithRunFailure(kind domain.ErrorKind, line int, msg string) RunOption {
	return func(r *domain.ScriptRun) {
		r.Success = false
		r.ErrorType = kind
		r.ErrorLine = line
		r.Message = msg
	}
}

func WithRunAt(t time.Time) RunOption {
	return func(r *domain.ScriptRun) {
		r.CreatedAt = t
	}
}

func NewTestRun(drawingID, script string, opts ...RunOption) *domain.ScriptRun {
	r := &domain.ScriptRun{
		ID:        uuid.NewString(),
		DrawingID: drawingID,
		Script:    script,
		Success:   true,
		Duration:  12 * time.Millisecond,
		CreatedAt: Fixed,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
