package domain

import "time"

// Layer groups shape ids. It does not own the shapes it references.
type Layer struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Visible bool     `json:"visible" yaml:"visible"`
	Locked  bool     `json:"locked" yaml:"locked"`
	Shapes  []string `json:"shapes" yaml:"shapes"`
}

// Template is a reusable group of shapes.
type Template struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Shapes      []Shape `json:"shapes" yaml:"shapes"`
	Thumbnail   string  `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

type DrawingMetadata struct {
	Scale  float64     `json:"scale" yaml:"scale"`
	Units  Units       `json:"units" yaml:"units"`
	Bounds BoundingBox `json:"bounds" yaml:"bounds"`
	Layers []Layer     `json:"layers" yaml:"layers"`
}

// Drawing is the root aggregate of a design document. Metadata.Bounds is
// derived from Shapes and must only be written by drawing.Refresh.
type Drawing struct {
	ID        string          `json:"id" yaml:"id"`
	Name      string          `json:"name" yaml:"name"`
	Shapes    []Shape         `json:"shapes" yaml:"shapes"`
	Templates []Template      `json:"templates" yaml:"templates"`
	Metadata  DrawingMetadata `json:"metadata" yaml:"metadata"`
	CreatedAt time.Time       `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt" yaml:"updatedAt"`
}

// Clone returns a deep copy of the drawing.
func (d *Drawing) Clone() *Drawing {
	if d == nil {
		return nil
	}
	out := *d
	out.Shapes = CloneShapes(d.Shapes)
	if d.Templates != nil {
		out.Templates = make([]Template, len(d.Templates))
		for i, t := range d.Templates {
			t.Shapes = CloneShapes(t.Shapes)
			out.Templates[i] = t
		}
	}
	if d.Metadata.Layers != nil {
		out.Metadata.Layers = make([]Layer, len(d.Metadata.Layers))
		for i, l := range d.Metadata.Layers {
			l.Shapes = append([]string(nil), l.Shapes...)
			out.Metadata.Layers[i] = l
		}
	}
	return &out
}

// FindShape returns the first shape with the given id.
func (d *Drawing) FindShape(id string) (Shape, bool) {
	for _, s := range d.Shapes {
		if s.ID == id {
			return s, true
		}
	}
	return Shape{}, false
}
