package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/plancad/internal/config"
	"github.com/alexanderramin/plancad/internal/service"
)

// errScriptFailed is returned after a script failure has been printed, so
// the process exits non-zero without repeating the message.
var errScriptFailed = errors.New("script failed")

// IsReported reports whether err has already been shown to the user.
func IsReported(err error) bool {
	return errors.Is(err, errScriptFailed)
}

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Scripts  service.ScriptService
	Drawings service.DrawingService
	Catalog  service.CatalogService
	// Drafts is nil when drafting is disabled.
	Drafts service.DraftService

	// Server configures the serve command. Nil means built-in defaults.
	Server config.Server

	IsInteractive func() bool
	Now           func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "plancad" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "plancad",
		Short:         "Script-driven floor plan drawings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRunCmd(app),
		newValidateCmd(app),
		newCommandsCmd(app),
		newInspectCmd(app),
		newDrawingCmd(app),
		newHistoryCmd(app),
		newEditCmd(app),
		newDraftCmd(app),
		newServeCmd(app),
	)

	return root
}
