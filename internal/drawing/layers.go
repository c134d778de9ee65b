package drawing

import (
	"fmt"
	"slices"
	"time"

	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// AddLayer appends a visible, unlocked layer.
func AddLayer(d *domain.Drawing, name string, now time.Time) (*domain.Drawing, domain.Layer) {
	layer := domain.Layer{
		ID:      uuid.NewString(),
		Name:    name,
		Visible: true,
		Shapes:  []string{},
	}
	out := d.Clone()
	normalize(out)
	out.Metadata.Layers = append(out.Metadata.Layers, layer)
	out.UpdatedAt = now.UTC()
	return out, layer
}

// AssignToLayer moves shapes onto a layer. A shape belongs to at most one
// layer, so it is removed from any other layer first.
func AssignToLayer(d *domain.Drawing, layerID string, shapeIDs []string, now time.Time) (*domain.Drawing, error) {
	out := d.Clone()
	normalize(out)

	idx := layerIndex(out, layerID)
	if idx < 0 {
		return nil, fmt.Errorf("assign to layer %s: %w", layerID, domain.ErrLayerNotFound)
	}
	for _, id := range shapeIDs {
		if _, ok := out.FindShape(id); !ok {
			return nil, fmt.Errorf("assign to layer %s: %w: %q", layerID, domain.ErrShapeNotFound, id)
		}
	}

	for i := range out.Metadata.Layers {
		out.Metadata.Layers[i].Shapes = lo.Without(out.Metadata.Layers[i].Shapes, shapeIDs...)
	}
	out.Metadata.Layers[idx].Shapes = append(out.Metadata.Layers[idx].Shapes, lo.Uniq(shapeIDs)...)
	out.UpdatedAt = now.UTC()
	return out, nil
}

// SetLayerFlags updates a layer's visibility and lock state.
func SetLayerFlags(d *domain.Drawing, layerID string, visible, locked bool, now time.Time) (*domain.Drawing, error) {
	out := d.Clone()
	idx := layerIndex(out, layerID)
	if idx < 0 {
		return nil, fmt.Errorf("set layer flags %s: %w", layerID, domain.ErrLayerNotFound)
	}
	out.Metadata.Layers[idx].Visible = visible
	out.Metadata.Layers[idx].Locked = locked
	out.UpdatedAt = now.UTC()
	return out, nil
}

// LockedShapes returns the ids of every shape on a locked layer, mapped to
// the layer name.
func LockedShapes(d *domain.Drawing) map[string]string {
	locked := make(map[string]string)
	for _, l := range d.Metadata.Layers {
		if !l.Locked {
			continue
		}
		for _, id := range l.Shapes {
			locked[id] = l.Name
		}
	}
	return locked
}

func layerIndex(d *domain.Drawing, id string) int {
	return slices.IndexFunc(d.Metadata.Layers, func(l domain.Layer) bool { return l.ID == id })
}
