package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultExportFile = "circuits.txt"

func newExportCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every circuit to a plain-text backup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.Circuits.ExportText()
			if err != nil {
				return err
			}
			if output == "-" {
				fmt.Print(data)
				return nil
			}
			if err := os.WriteFile(output, []byte(data), 0644); err != nil {
				return fmt.Errorf("writing export file: %w", err)
			}
			fmt.Printf("Exported %d circuits to %s\n", len(app.Circuits.Circuits()), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", defaultExportFile, `Output file ("-" for stdout)`)

	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import circuits from a plain-text backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading import file: %w", err)
			}
			n, err := app.Circuits.ImportText(context.Background(), string(data))
			if err != nil {
				return fmt.Errorf("importing circuits: %w", err)
			}
			fmt.Printf("Imported %d circuits\n", n)
			return nil
		},
	}
}
