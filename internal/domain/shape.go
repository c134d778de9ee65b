package domain

import "maps"

type RenderStyle struct {
	StrokeColor string    `json:"strokeColor,omitempty" yaml:"strokeColor,omitempty"`
	FillColor   string    `json:"fillColor,omitempty" yaml:"fillColor,omitempty"`
	StrokeWidth float64   `json:"strokeWidth,omitempty" yaml:"strokeWidth,omitempty"`
	LineStyle   LineStyle `json:"lineStyle,omitempty" yaml:"lineStyle,omitempty"`
	Opacity     float64   `json:"opacity,omitempty" yaml:"opacity,omitempty"`
}

type ShapeProperties struct {
	Name     string         `json:"name,omitempty" yaml:"name,omitempty"`
	Category string         `json:"category,omitempty" yaml:"category,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Shape is an immutable placed entity. Transformations return new values;
// use Clone before changing any field of a shape that is shared.
type Shape struct {
	ID         string          `json:"id" yaml:"id"`
	Type       ShapeType       `json:"type" yaml:"type"`
	Geometry   Geometry        `json:"geometry" yaml:"geometry"`
	Properties ShapeProperties `json:"properties" yaml:"properties"`
	Label      string          `json:"label,omitempty" yaml:"label,omitempty"`
	Style      RenderStyle     `json:"style" yaml:"style"`
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	out := s
	out.Geometry = s.Geometry.Clone()
	if s.Properties.Metadata != nil {
		out.Properties.Metadata = maps.Clone(s.Properties.Metadata)
	}
	return out
}

// WithLabel returns a copy of the shape carrying the given label.
func (s Shape) WithLabel(label string) Shape {
	out := s.Clone()
	out.Label = label
	return out
}

// CloneShapes deep-copies a shape slice.
func CloneShapes(shapes []Shape) []Shape {
	if shapes == nil {
		return nil
	}
	out := make([]Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s.Clone()
	}
	return out
}
