package drawing

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/plancad/internal/domain"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a snapshot format name; empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown snapshot format %q (expected json or yaml)", s)
}

// Marshal encodes the full drawing state.
func Marshal(d *domain.Drawing, f Format) ([]byte, error) {
	switch f {
	case FormatJSON, "":
		return json.MarshalIndent(d, "", "  ")
	case FormatYAML:
		return yaml.Marshal(d)
	}
	return nil, fmt.Errorf("unknown snapshot format %q", f)
}

// Unmarshal decodes a snapshot produced by Marshal. The decoded drawing is
// checked against the aggregate invariants and refreshed.
func Unmarshal(data []byte, f Format) (*domain.Drawing, error) {
	var d domain.Drawing
	switch f {
	case FormatJSON, "":
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
		}
		normalizeYAMLNumbers(&d)
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", f)
	}

	if err := Validate(&d); err != nil {
		return nil, err
	}
	return Refresh(&d), nil
}

// Validate checks a drawing loaded from outside the pipeline.
func Validate(d *domain.Drawing) error {
	if d.ID == "" {
		return fmt.Errorf("%w: drawing id is required", domain.ErrInvalidSnapshot)
	}
	if d.Metadata.Units != "" && !domain.ValidUnits[d.Metadata.Units] {
		return fmt.Errorf("%w: unknown units %q", domain.ErrInvalidSnapshot, d.Metadata.Units)
	}
	seen := make(map[string]bool, len(d.Shapes))
	for i, s := range d.Shapes {
		if s.ID == "" {
			return fmt.Errorf("%w: shape %d has no id", domain.ErrInvalidSnapshot, i)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate shape id %q", domain.ErrInvalidSnapshot, s.ID)
		}
		seen[s.ID] = true
		if !domain.ValidShapeTypes[s.Type] {
			return fmt.Errorf("%w: shape %q has unknown type %q", domain.ErrInvalidSnapshot, s.ID, s.Type)
		}
		if err := s.Geometry.Validate(); err != nil {
			return fmt.Errorf("%w: shape %q: %v", domain.ErrInvalidSnapshot, s.ID, err)
		}
	}
	return nil
}

// yaml.v3 decodes whole numbers in free-form maps as int; JSON decoding and
// the shape factory always produce float64.
func normalizeYAMLNumbers(d *domain.Drawing) {
	fix := func(shapes []domain.Shape) {
		for i := range shapes {
			if m := shapes[i].Properties.Metadata; m != nil {
				for k, v := range m {
					m[k] = normalizeNumber(v)
				}
			}
		}
	}
	fix(d.Shapes)
	for i := range d.Templates {
		fix(d.Templates[i].Shapes)
	}
}

func normalizeNumber(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case map[string]any:
		for k, inner := range n {
			n[k] = normalizeNumber(inner)
		}
		return n
	case []any:
		for i, inner := range n {
			n[i] = normalizeNumber(inner)
		}
		return n
	}
	return v
}
