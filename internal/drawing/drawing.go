// Package drawing holds the operations of the Drawing aggregate: creation,
// bounds refresh, clearing, layers, templates and snapshot encoding. Every
// operation returns a new *domain.Drawing; inputs are never modified.
package drawing

import (
	"time"

	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/geometry"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// New returns an empty drawing with scale 1 and default bounds.
func New(name string, units domain.Units, now time.Time) *domain.Drawing {
	if units == "" {
		units = domain.UnitsMillimeter
	}
	now = now.UTC()
	return &domain.Drawing{
		ID:        uuid.NewString(),
		Name:      name,
		Shapes:    []domain.Shape{},
		Templates: []domain.Template{},
		Metadata: domain.DrawingMetadata{
			Scale:  1,
			Units:  units,
			Bounds: geometry.DefaultBounds,
			Layers: []domain.Layer{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Refresh returns a copy of d whose bounds are recomputed from its shapes
// and whose layers no longer reference deleted shapes.
func Refresh(d *domain.Drawing) *domain.Drawing {
	out := d.Clone()
	normalize(out)
	out.Metadata.Bounds = geometry.DrawingBounds(out.Shapes)

	live := make(map[string]bool, len(out.Shapes))
	for _, s := range out.Shapes {
		live[s.ID] = true
	}
	for i := range out.Metadata.Layers {
		out.Metadata.Layers[i].Shapes = lo.Filter(out.Metadata.Layers[i].Shapes, func(id string, _ int) bool {
			return live[id]
		})
	}
	return out
}

// Clear empties the shape collection. Identity, name, templates and layers
// are kept.
func Clear(d *domain.Drawing, now time.Time) *domain.Drawing {
	out := d.Clone()
	out.Shapes = []domain.Shape{}
	out.UpdatedAt = now.UTC()
	return Refresh(out)
}

// WithShapes returns a refreshed copy of d holding shapes.
func WithShapes(d *domain.Drawing, shapes []domain.Shape, now time.Time) *domain.Drawing {
	out := d.Clone()
	out.Shapes = domain.CloneShapes(shapes)
	out.UpdatedAt = now.UTC()
	return Refresh(out)
}

// Summary reports aggregate facts about a drawing.
type Summary struct {
	Shapes    int                      `json:"shapes"`
	ByType    map[domain.ShapeType]int `json:"byType"`
	TotalArea float64                  `json:"totalArea"`
	Bounds    domain.BoundingBox       `json:"bounds"`
}

// Summarize counts shapes per type and sums their enclosed area.
func Summarize(d *domain.Drawing) Summary {
	s := Summary{
		Shapes: len(d.Shapes),
		ByType: lo.CountValuesBy(d.Shapes, func(sh domain.Shape) domain.ShapeType { return sh.Type }),
		Bounds: geometry.DrawingBounds(d.Shapes),
	}
	s.TotalArea = lo.SumBy(d.Shapes, geometry.ShapeArea)
	return s
}

func normalize(d *domain.Drawing) {
	if d.Shapes == nil {
		d.Shapes = []domain.Shape{}
	}
	if d.Templates == nil {
		d.Templates = []domain.Template{}
	}
	for i := range d.Templates {
		if d.Templates[i].Shapes == nil {
			d.Templates[i].Shapes = []domain.Shape{}
		}
	}
	if d.Metadata.Layers == nil {
		d.Metadata.Layers = []domain.Layer{}
	}
	for i := range d.Metadata.Layers {
		if d.Metadata.Layers[i].Shapes == nil {
			d.Metadata.Layers[i].Shapes = []string{}
		}
	}
}
