package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/plancad/internal/cli/formatter"
	"github.com/alexanderramin/plancad/internal/contract"
)

func newRunCmd(app *App) *cobra.Command {
	var (
		drawingPath, drawingRef string
		outPath, format         string
		vars, selected          []string
		dryRun, asJSON, force   bool
	)

	cmd := &cobra.Command{
		Use:   "run SCRIPT",
		Short: "Execute a script against a drawing",
		Long: `Execute a script against a stored drawing (--id), a snapshot file
(--drawing) or, with neither, an empty scratch drawing. Use "-" to read
the script from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if drawingPath != "" && drawingRef != "" {
				return fmt.Errorf("--drawing and --id are mutually exclusive")
			}

			src, err := readScript(cmd, args[0])
			if err != nil {
				return err
			}
			variables, err := parseVars(vars)
			if err != nil {
				return err
			}

			req := contract.NewExecuteRequest(src)
			req.Variables = variables
			req.Selected = selected
			req.DryRun = dryRun

			if drawingPath != "" {
				d, err := readDrawingFile(drawingPath, format)
				if err != nil {
					return err
				}
				req.Drawing = d
			}
			if drawingRef != "" {
				id, err := resolveDrawingID(ctx, app, drawingRef)
				if err != nil {
					return err
				}
				req.DrawingID = id
			}
			if outPath != "" {
				if err := confirmOverwrite(cmd, app, outPath, force); err != nil {
					return err
				}
			}

			resp, err := app.Scripts.Execute(ctx, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if err := printJSON(out, resp); err != nil {
					return err
				}
			} else if resp.Success {
				fmt.Fprint(out, formatter.FormatExecuteResult(resp))
			} else {
				fmt.Fprint(out, formatter.FormatScriptFailure(src, resp))
			}
			if !resp.Success {
				return errScriptFailed
			}

			if outPath != "" {
				if err := writeDrawingFile(outPath, format, resp.Drawing); err != nil {
					return err
				}
				if !asJSON {
					fmt.Fprintf(out, "\nWrote %s\n", outPath)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&drawingPath, "drawing", "", "Snapshot file to run against (JSON or YAML)")
	cmd.Flags().StringVar(&drawingRef, "id", "", "Stored drawing ID, ID prefix or name")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the resulting drawing to this file")
	cmd.Flags().StringVar(&format, "format", "", "Snapshot format: json or yaml (default from file extension)")
	cmd.Flags().StringArrayVar(&vars, "var", nil, "Script variable as key=value (repeatable; JSON values keep their type)")
	cmd.Flags().StringSliceVar(&selected, "select", nil, "Shape IDs exposed to the script as cad.selected")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Do not store the result or record history")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw response as JSON")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite --out without asking")

	return cmd
}

func newValidateCmd(app *App) *cobra.Command {
	var vars []string

	cmd := &cobra.Command{
		Use:   "validate SCRIPT",
		Short: "Check a script without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readScript(cmd, args[0])
			if err != nil {
				return err
			}
			variables, err := parseVars(vars)
			if err != nil {
				return err
			}

			resp, err := app.Scripts.Validate(context.Background(), contract.ValidateRequest{
				Script:    src,
				Variables: variables,
			})
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatValidation(src, resp))
			if !resp.Valid {
				return errScriptFailed
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, "Variable name the script may reference, as key=value")

	return cmd
}

func newCommandsCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "commands",
		Short: "List the functions available to scripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := app.Catalog.Commands()
			if asJSON {
				return printJSON(cmd.OutOrStdout(), specs)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCommandCatalog(specs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")

	return cmd
}
