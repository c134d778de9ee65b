package pipeline

import (
	"fmt"

	"github.com/alexanderramin/plancad/internal/command"
	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/geometry"
)

// create dispatches a create_* command to the matching factory method.
func create(f *geometry.Factory, c command.Command) (domain.Shape, error) {
	id, err := c.StringOr("id", "")
	if err != nil {
		return domain.Shape{}, err
	}

	switch c.Name {
	case command.CreateWall:
		start, err := c.Point("start")
		if err != nil {
			return domain.Shape{}, err
		}
		end, err := c.Point("end")
		if err != nil {
			return domain.Shape{}, err
		}
		thickness, err := c.NumberOr("thickness", geometry.DefaultWallThickness)
		if err != nil {
			return domain.Shape{}, err
		}
		return f.Wall(id, start, end, thickness)

	case command.CreateColumn:
		center, err := c.Point("center")
		if err != nil {
			return domain.Shape{}, err
		}
		dims, err := dimensions(c)
		if err != nil {
			return domain.Shape{}, err
		}
		profile, err := c.StringOr("shape_type", string(domain.ColumnRectangular))
		if err != nil {
			return domain.Shape{}, err
		}
		return f.Column(id, center, dims, domain.ColumnProfile(profile))

	case command.CreateDoor:
		pos, err := c.Point("position")
		if err != nil {
			return domain.Shape{}, err
		}
		width, err := c.NumberOr("width", geometry.DefaultDoorWidth)
		if err != nil {
			return domain.Shape{}, err
		}
		dir, err := c.StringOr("direction", string(domain.DoorLeft))
		if err != nil {
			return domain.Shape{}, err
		}
		return f.Door(id, pos, width, domain.DoorDirection(dir))

	case command.CreateFixture, command.CreateEquipment:
		pos, err := c.Point("position")
		if err != nil {
			return domain.Shape{}, err
		}
		dims, err := dimensions(c)
		if err != nil {
			return domain.Shape{}, err
		}
		if c.Name == command.CreateFixture {
			kind, err := c.String("fixture_type")
			if err != nil {
				return domain.Shape{}, err
			}
			return f.Fixture(id, pos, dims, kind)
		}
		kind, err := c.String("equipment_type")
		if err != nil {
			return domain.Shape{}, err
		}
		return f.Equipment(id, pos, dims, kind)

	case command.CreateArea:
		vertices, err := c.Points("vertices")
		if err != nil {
			return domain.Shape{}, err
		}
		kind, err := c.String("area_type")
		if err != nil {
			return domain.Shape{}, err
		}
		return f.Area(id, vertices, kind)
	}
	return domain.Shape{}, fmt.Errorf("unknown create command %q", c.Name)
}

func dimensions(c command.Command) (domain.Dimensions, error) {
	w, err := c.Number("width")
	if err != nil {
		return domain.Dimensions{}, err
	}
	h, err := c.Number("height")
	if err != nil {
		return domain.Dimensions{}, err
	}
	return domain.Dimensions{Width: w, Height: h}, nil
}
