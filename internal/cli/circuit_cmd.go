package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/crux/internal/cli/formatter"
	"github.com/alexanderramin/crux/internal/domain"
	"github.com/spf13/cobra"
)

func newCircuitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "circuit",
		Short: "Manage circuits",
	}

	cmd.AddCommand(
		newCircuitAddCmd(app),
		newCircuitListCmd(app),
		newCircuitViewCmd(app),
		newCircuitRemoveCmd(app),
		newCircuitResetCmd(app),
	)

	return cmd
}

func newCircuitAddCmd(app *App) *cobra.Command {
	var name, color string
	var problems int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new circuit",
		RunE: func(cmd *cobra.Command, args []string) error {
			key := domain.ColorKey(color)
			if !key.Known() {
				return fmt.Errorf("unknown color %q (one of: %s)", color, colorKeyList())
			}

			c, err := app.Circuits.CreateCircuit(context.Background(), name, problems, key)
			if err != nil {
				return err
			}

			fmt.Printf("Created circuit %s %s with %d problems\n",
				formatter.CircuitSwatch(c.Color), c.Name, len(c.Problems))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Circuit name (generated from month and color when omitted)")
	cmd.Flags().IntVar(&problems, "problems", 0, "Number of problems in the circuit")
	cmd.Flags().StringVar(&color, "color", "", "Circuit color key")
	_ = cmd.MarkFlagRequired("problems")
	_ = cmd.MarkFlagRequired("color")

	return cmd
}

func newCircuitListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List circuits, most recently viewed first",
		RunE: func(cmd *cobra.Command, args []string) error {
			circuits := app.Circuits.Circuits()
			if len(circuits) == 0 {
				fmt.Println("No circuits yet. Create one with: crux circuit add")
				return nil
			}
			currentID := ""
			if c := app.Circuits.Current(); c != nil {
				currentID = c.ID
			}
			fmt.Print(formatter.RenderCircuitList(circuits, currentID))
			return nil
		},
	}
}

func newCircuitViewCmd(app *App) *cobra.Command {
	var statusFilter []string

	cmd := &cobra.Command{
		Use:   "view [circuit]",
		Short: "Select a circuit and show its problems",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveCircuitID(app.Circuits, argOrEmpty(args))
			if err != nil {
				return err
			}
			if err := app.Circuits.SelectCircuit(context.Background(), id); err != nil {
				return err
			}
			c, err := app.Circuits.Circuit(id)
			if err != nil {
				return err
			}

			enabled, err := enabledStatuses(statusFilter)
			if err != nil {
				return err
			}
			fmt.Print(formatter.RenderProblemGrid(c, enabled))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&statusFilter, "status", nil,
		"Only show problems with these statuses (default: all)")

	return cmd
}

func newCircuitRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <circuit>",
		Short: "Delete a circuit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveCircuitID(app.Circuits, args[0])
			if err != nil {
				return err
			}
			c, err := app.Circuits.Circuit(id)
			if err != nil {
				return err
			}

			ok, err := confirm(fmt.Sprintf("Delete circuit %q?", c.Name), yes)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}

			if err := app.Circuits.DeleteCircuit(context.Background(), id); err != nil {
				if errors.Is(err, domain.ErrLastCircuit) {
					return fmt.Errorf("you must have at least one circuit")
				}
				return err
			}
			fmt.Printf("Deleted circuit %s\n", c.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newCircuitResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset [circuit]",
		Short: "Reset every problem back to unattempted (notes and pins are kept)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveCircuitID(app.Circuits, argOrEmpty(args))
			if err != nil {
				return err
			}
			c, err := app.Circuits.Circuit(id)
			if err != nil {
				return err
			}

			ok, err := confirm(fmt.Sprintf("Reset all progress for %q?", c.Name), yes)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}

			if err := app.Circuits.ResetProgress(context.Background(), id); err != nil {
				return err
			}
			fmt.Printf("Reset progress for %s\n", c.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func argOrEmpty(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func colorKeyList() string {
	keys := make([]string, 0, len(domain.ColorOptions))
	for _, k := range []domain.ColorKey{
		domain.ColorGreen, domain.ColorBlue, domain.ColorPurple, domain.ColorRed,
		domain.ColorYellow, domain.ColorIrnBru, domain.ColorWasp, domain.ColorMurple,
	} {
		keys = append(keys, string(k))
	}
	return strings.Join(keys, ", ")
}

// enabledStatuses turns --status flags into a filter set. No flags
// means every status is shown.
func enabledStatuses(filters []string) (map[domain.Status]bool, error) {
	enabled := make(map[domain.Status]bool, len(domain.Statuses))
	if len(filters) == 0 {
		for _, s := range domain.Statuses {
			enabled[s] = true
		}
		return enabled, nil
	}
	for _, f := range filters {
		s := domain.Status(f)
		if !s.Known() {
			return nil, fmt.Errorf("unknown status %q", f)
		}
		enabled[s] = true
	}
	return enabled, nil
}
