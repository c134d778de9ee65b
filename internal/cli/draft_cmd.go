package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/plancad/internal/cli/formatter"
	"github.com/alexanderramin/plancad/internal/contract"
	"github.com/alexanderramin/plancad/internal/intelligence"
)

func newDraftCmd(app *App) *cobra.Command {
	var drawingRef, outPath string
	var vars []string
	var asJSON, force bool

	cmd := &cobra.Command{
		Use:   "draft DESCRIPTION...",
		Short: "Draft a script from a plain-language description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Drafts == nil {
				return fmt.Errorf("%w: set PLANCAD_LLM_ENABLED=true", intelligence.ErrDraftingDisabled)
			}
			ctx := context.Background()

			variables, err := parseVars(vars)
			if err != nil {
				return err
			}
			req := contract.DraftScriptRequest{
				Description: strings.Join(args, " "),
				Variables:   variables,
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

			stop := func() {}
			if app.interactive() && !asJSON {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Drafting script…")
			}
			resp, err := app.Drafts.Draft(ctx, req)
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if err := printJSON(out, resp); err != nil {
					return err
				}
			} else {
				fmt.Fprint(out, formatter.FormatDraft(resp))
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(resp.Script), 0o644); err != nil {
					return err
				}
				if !asJSON {
					fmt.Fprintf(out, "Wrote %s\n", outPath)
				}
			}
			if !resp.Valid {
				return errScriptFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&drawingRef, "id", "", "Stored drawing whose units the draft should use")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the drafted script to this file")
	cmd.Flags().StringArrayVar(&vars, "var", nil, "Variable the script may use, as key=value")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw response as JSON")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite --out without asking")

	return cmd
}
