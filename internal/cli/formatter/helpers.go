package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/plancad/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// HumanTimestamp returns a human-friendly timestamp relative to now.
func HumanTimestamp(t time.Time) string {
	return HumanTimestampFrom(t, time.Now())
}

// HumanTimestampFrom returns a human-friendly timestamp relative to now.
func HumanTimestampFrom(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Number formats a coordinate or length without trailing zeros.
func Number(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

// Length renders v followed by its unit, e.g. "1200 mm".
func Length(v float64, u domain.Units) string {
	return Number(v) + " " + string(u)
}

// Area renders v in square units, e.g. "2.5 m²".
func Area(v float64, u domain.Units) string {
	return Number(v) + " " + string(u) + "²"
}

// PointStr renders a point as "(x, y)".
func PointStr(p domain.Point) string {
	return "(" + Number(p.X) + ", " + Number(p.Y) + ")"
}

// Duration renders a run duration in milliseconds or seconds.
func Duration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
