package drawing

import (
	"fmt"
	"time"

	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/geometry"
	"github.com/google/uuid"
)

// SaveTemplate stores copies of the given shapes as a reusable template.
// Shape coordinates are stored relative to the group's bounding box origin
// so that PlaceTemplate offsets are absolute positions.
func SaveTemplate(d *domain.Drawing, name, description string, shapeIDs []string, now time.Time) (*domain.Drawing, domain.Template, error) {
	if len(shapeIDs) == 0 {
		return nil, domain.Template{}, fmt.Errorf("save template %q: %w: no shapes given", name, domain.ErrInvalidInput)
	}

	shapes := make([]domain.Shape, 0, len(shapeIDs))
	for _, id := range shapeIDs {
		s, ok := d.FindShape(id)
		if !ok {
			return nil, domain.Template{}, fmt.Errorf("save template %q: %w: %q", name, domain.ErrShapeNotFound, id)
		}
		shapes = append(shapes, s)
	}

	origin := geometry.DrawingBounds(shapes).Min
	for i, s := range shapes {
		shapes[i] = geometry.Translate(s, -origin.X, -origin.Y)
	}

	tmpl := domain.Template{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Shapes:      shapes,
	}
	out := d.Clone()
	normalize(out)
	out.Templates = append(out.Templates, tmpl)
	out.UpdatedAt = now.UTC()
	return out, tmpl, nil
}

// PlaceTemplate appends a fresh copy of every template shape, translated so
// the template origin lands on at. It returns the ids of the placed shapes.
func PlaceTemplate(d *domain.Drawing, templateID string, at domain.Point, f *geometry.Factory, now time.Time) (*domain.Drawing, []string, error) {
	var tmpl *domain.Template
	for i := range d.Templates {
		if d.Templates[i].ID == templateID {
			tmpl = &d.Templates[i]
			break
		}
	}
	if tmpl == nil {
		return nil, nil, fmt.Errorf("place template %s: %w", templateID, domain.ErrTemplateNotFound)
	}

	shapes := domain.CloneShapes(d.Shapes)
	ids := make([]string, 0, len(tmpl.Shapes))
	for _, s := range tmpl.Shapes {
		placed := f.Copy("", s, at)
		shapes = append(shapes, placed)
		ids = append(ids, placed.ID)
	}
	return WithShapes(d, shapes, now), ids, nil
}
