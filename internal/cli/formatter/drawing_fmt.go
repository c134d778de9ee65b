package formatter

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/alexanderramin/plancad/internal/contract"
	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/drawing"
)

// FormatDrawingSummary renders the header block shown by inspect and run.
func FormatDrawingSummary(d *domain.Drawing) string {
	sum := drawing.Summarize(d)
	u := d.Metadata.Units

	var b strings.Builder
	b.WriteString(Header(d.Name))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n", Dim("id:     "), d.ID)
	fmt.Fprintf(&b, "  %s %s  %s\n", Dim("units:  "), string(u), Dim("scale "+Number(d.Metadata.Scale)))
	fmt.Fprintf(&b, "  %s %s → %s  %s\n", Dim("bounds: "),
		PointStr(d.Metadata.Bounds.Min), PointStr(d.Metadata.Bounds.Max),
		Dim(Length(d.Metadata.Bounds.Width(), u)+" × "+Length(d.Metadata.Bounds.Height(), u)))
	fmt.Fprintf(&b, "  %s %d", Dim("shapes: "), sum.Shapes)
	if sum.Shapes > 0 {
		types := lo.Keys(sum.ByType)
		slices.Sort(types)
		parts := lo.Map(types, func(t domain.ShapeType, _ int) string {
			return fmt.Sprintf("%d %s", sum.ByType[t], t)
		})
		b.WriteString(Dim("  (" + strings.Join(parts, ", ") + ")"))
	}
	b.WriteString("\n")
	if sum.TotalArea > 0 {
		fmt.Fprintf(&b, "  %s %s\n", Dim("area:   "), Area(sum.TotalArea, u))
	}
	if n := len(d.Metadata.Layers); n > 0 {
		fmt.Fprintf(&b, "  %s %d\n", Dim("layers: "), n)
	}
	if n := len(d.Templates); n > 0 {
		fmt.Fprintf(&b, "  %s %d\n", Dim("templates:"), n)
	}
	return b.String()
}

// FormatShapeTable lists shapes with their anchor point and label.
func FormatShapeTable(shapes []domain.Shape) string {
	if len(shapes) == 0 {
		return Dim("  No shapes.") + "\n"
	}
	rows := lo.Map(shapes, func(s domain.Shape, _ int) []string {
		anchor := "-"
		if len(s.Geometry.Coordinates) > 0 {
			anchor = PointStr(s.Geometry.Coordinates[0])
		}
		return []string{
			s.ID,
			StyleBlue.Render(string(s.Type)),
			string(s.Geometry.Kind),
			anchor,
			lo.CoalesceOrEmpty(s.Label, s.Properties.Name),
		}
	})
	return RenderTable([]string{"ID", "TYPE", "GEOMETRY", "ANCHOR", "LABEL"}, rows)
}

// FormatLayers lists layers with their flags and shape counts.
func FormatLayers(layers []domain.Layer) string {
	rows := lo.Map(layers, func(l domain.Layer, _ int) []string {
		flags := []string{}
		if !l.Visible {
			flags = append(flags, StyleDim.Render("hidden"))
		}
		if l.Locked {
			flags = append(flags, StyleYellow.Render("locked"))
		}
		return []string{l.ID, l.Name, fmt.Sprintf("%d", len(l.Shapes)), strings.Join(flags, " ")}
	})
	return RenderTable([]string{"ID", "NAME", "SHAPES", "FLAGS"}, rows)
}

// FormatDrawingList renders stored drawings, newest first as given.
func FormatDrawingList(list []contract.DrawingSummary, now time.Time) string {
	if len(list) == 0 {
		return Dim("No drawings stored.") + "\n"
	}
	rows := lo.Map(list, func(s contract.DrawingSummary, _ int) []string {
		return []string{
			s.ID,
			Bold(s.Name),
			string(s.Units),
			fmt.Sprintf("%d", s.ShapeCount),
			HumanTimestampFrom(s.UpdatedAt, now),
		}
	})
	return RenderTable([]string{"ID", "NAME", "UNITS", "SHAPES", "UPDATED"}, rows)
}

// FormatHitTest reports which shapes contain p.
func FormatHitTest(p domain.Point, d *domain.Drawing, ids []string) string {
	if len(ids) == 0 {
		return fmt.Sprintf("No shape contains %s.\n", PointStr(p))
	}
	shapes := lo.FilterMap(ids, func(id string, _ int) (domain.Shape, bool) {
		return d.FindShape(id)
	})
	return fmt.Sprintf("%s %s\n", Bold(fmt.Sprintf("%d shape(s) at", len(ids))), PointStr(p)) +
		FormatShapeTable(shapes)
}
