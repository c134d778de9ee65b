package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/plancad/internal/cli/formatter"
	"github.com/alexanderramin/plancad/internal/domain"
	"github.com/alexanderramin/plancad/internal/drawing"
	"github.com/alexanderramin/plancad/internal/geometry"
)

func newInspectCmd(app *App) *cobra.Command {
	var format string
	var at pointFlag
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Summarize a drawing snapshot file",
		Long: `Summarize a drawing snapshot file. With --at x,y only the shapes
containing that point are listed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := readDrawingFile(args[0], format)
			if err != nil {
				return err
			}
			if err := drawing.Validate(d); err != nil {
				return err
			}
			d = drawing.Refresh(d)
			out := cmd.OutOrStdout()

			if at.set {
				p := at.p
				hits := geometry.ShapesAt(p, d.Shapes)
				if asJSON {
					return printJSON(out, hits)
				}
				fmt.Fprint(out, formatter.FormatHitTest(p, d, hits))
				return nil
			}

			if asJSON {
				return printJSON(out, drawing.Summarize(d))
			}
			printDrawing(cmd, d)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "json or yaml (default from file extension)")
	cmd.Flags().Var(&at, "at", "List shapes containing the point x,y")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")

	return cmd
}

// pointFlag is an "x,y" flag value.
type pointFlag struct {
	p   domain.Point
	set bool
}

var _ pflag.Value = (*pointFlag)(nil)

func (f *pointFlag) String() string {
	if !f.set {
		return ""
	}
	return fmt.Sprintf("%g,%g", f.p.X, f.p.Y)
}

func (f *pointFlag) Set(s string) error {
	p, err := parsePoint(s)
	if err != nil {
		return err
	}
	f.p, f.set = p, true
	return nil
}

func (f *pointFlag) Type() string { return "x,y" }

func parsePoint(s string) (domain.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return domain.Point{}, fmt.Errorf("invalid point %q (want x,y)", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return domain.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return domain.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return domain.Point{X: x, Y: y}, nil
}
