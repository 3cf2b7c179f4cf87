package cli

import (
	"github.com/alexanderramin/crux/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to the services used by CLI commands.
type App struct {
	Circuits service.CircuitService
}

// NewRootCmd creates the top-level "crux" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "crux",
		Short:         "Bouldering circuit tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCircuitCmd(app),
		newProblemCmd(app),
		newExportCmd(app),
		newImportCmd(app),
	)

	return root
}
