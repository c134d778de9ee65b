package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/plancad/internal/cli/formatter"
	"github.com/alexanderramin/plancad/internal/contract"
	"github.com/alexanderramin/plancad/internal/domain"
)

func newDrawingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "drawing",
		Aliases: []string{"drawings"},
		Short:   "Manage stored drawings",
	}

	cmd.AddCommand(
		newDrawingNewCmd(app),
		newDrawingListCmd(app),
		newDrawingShowCmd(app),
		newDrawingRemoveCmd(app),
		newDrawingClearCmd(app),
		newDrawingExportCmd(app),
		newDrawingImportCmd(app),
	)

	return cmd
}

func newDrawingNewCmd(app *App) *cobra.Command {
	var name, units string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an empty drawing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" && app.interactive() {
				if err := newDrawingForm(&name, &units).Run(); err != nil {
					return err
				}
			}

			d, err := app.Drawings.Create(context.Background(), contract.CreateDrawingRequest{
				Name:  name,
				Units: domain.Units(units),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created drawing %s %s\n", formatter.Bold(d.Name), formatter.Dim("("+d.ID+")"))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Drawing name")
	cmd.Flags().StringVar(&units, "units", "", "Units: mm, cm or m (default mm)")

	return cmd
}

func newDrawingListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored drawings",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.Drawings.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDrawingList(list, app.now()))
			return nil
		},
	}
}

func newDrawingShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show DRAWING",
		Short: "Show a stored drawing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveDrawingID(ctx, app, args[0])
			if err != nil {
				return err
			}
			d, err := app.Drawings.Get(ctx, id)
			if err != nil {
				return err
			}
			printDrawing(cmd, d)
			return nil
		},
	}
}

func printDrawing(cmd *cobra.Command, d *domain.Drawing) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatter.FormatDrawingSummary(d))
	fmt.Fprint(out, formatter.FormatShapeTable(d.Shapes))
	if len(d.Metadata.Layers) > 0 {
		fmt.Fprintln(out)
		fmt.Fprint(out, formatter.FormatLayers(d.Metadata.Layers))
	}
}

func newDrawingRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm DRAWING",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a stored drawing and its history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveDrawingID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete without --yes")
				}
				if !promptYesNoIO(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete drawing %s? [y/N]: ", id)) {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}
			if err := app.Drawings.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted drawing %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newDrawingClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear DRAWING",
		Short: "Remove every shape from a drawing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveDrawingID(ctx, app, args[0])
			if err != nil {
				return err
			}
			d, err := app.Drawings.Clear(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", formatter.Bold(d.Name))
			return nil
		},
	}
}

func newDrawingExportCmd(app *App) *cobra.Command {
	var format, outPath string
	var force bool

	cmd := &cobra.Command{
		Use:   "export DRAWING",
		Short: "Write a drawing snapshot to stdout or a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveDrawingID(ctx, app, args[0])
			if err != nil {
				return err
			}
			f, err := formatFor(outPath, format)
			if err != nil {
				return err
			}
			data, err := app.Drawings.Export(ctx, id, f)
			if err != nil {
				return err
			}
			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := confirmOverwrite(cmd, app, outPath, force); err != nil {
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "json or yaml (default from --out extension, else json)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite --out without asking")

	return cmd
}

func newDrawingImportCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Store a drawing snapshot, replacing a drawing with the same ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatFor(args[0], format)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			d, err := app.Drawings.Import(context.Background(), data, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s %s with %d shape(s)\n",
				formatter.Bold(d.Name), formatter.Dim("("+d.ID+")"), len(d.Shapes))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "json or yaml (default from file extension)")

	return cmd
}

func newHistoryCmd(app *App) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history DRAWING",
		Short: "Show scripts run against a stored drawing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveDrawingID(ctx, app, args[0])
			if err != nil {
				return err
			}
			runs, err := app.Scripts.History(ctx, id, limit)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), runs)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(runs, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print runs as JSON")

	return cmd
}
