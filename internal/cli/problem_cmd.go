package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/crux/internal/domain"
	"github.com/spf13/cobra"
)

func newProblemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "problem",
		Short: "Manage problems within a circuit",
	}

	cmd.AddCommand(
		newProblemTickCmd(app),
		newProblemStatusCmd(app),
		newProblemNoteCmd(app),
		newProblemPinCmd(app),
		newProblemAddCmd(app),
		newProblemDropCmd(app),
	)

	return cmd
}

// problemRef resolves "<circuit> <n>" argument pairs, or a bare "<n>"
// against the current circuit.
func problemRef(app *App, args []string) (circuitID string, problemID int, err error) {
	circuitArg := ""
	numArg := args[len(args)-1]
	if len(args) == 2 {
		circuitArg = args[0]
	}

	circuitID, err = resolveCircuitID(app.Circuits, circuitArg)
	if err != nil {
		return "", 0, err
	}
	problemID, err = strconv.Atoi(numArg)
	if err != nil {
		return "", 0, fmt.Errorf("invalid problem number %q", numArg)
	}
	return circuitID, problemID, nil
}

func newProblemTickCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tick [circuit] <n>",
		Short: "Cycle a problem's status (unattempted → flashed → sent → project)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			circuitID, problemID, err := problemRef(app, args)
			if err != nil {
				return err
			}
			status, err := app.Circuits.CycleProblemStatus(context.Background(), circuitID, problemID)
			if err != nil {
				return err
			}
			fmt.Printf("Problem #%d is now %s\n", problemID, status)
			return nil
		},
	}
}

func newProblemStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status [circuit] <n> <status>",
		Short: "Set a problem's status directly",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := domain.Status(args[len(args)-1])
			circuitID, problemID, err := problemRef(app, args[:len(args)-1])
			if err != nil {
				return err
			}
			if err := app.Circuits.SetProblemStatus(context.Background(), circuitID, problemID, status); err != nil {
				return err
			}
			fmt.Printf("Problem #%d marked %s\n", problemID, status)
			return nil
		},
	}
}

func newProblemNoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "note [circuit] <n> <text>",
		Short: "Set a problem's note (empty text clears it)",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			note := args[len(args)-1]
			if strings.ContainsRune(note, '\n') {
				// The export format is line-oriented and unescaped; a
				// newline in a note would corrupt it.
				return fmt.Errorf("notes cannot contain newlines")
			}
			circuitID, problemID, err := problemRef(app, args[:len(args)-1])
			if err != nil {
				return err
			}
			if err := app.Circuits.SetProblemNote(context.Background(), circuitID, problemID, note); err != nil {
				return err
			}
			if note == "" {
				fmt.Printf("Cleared note on problem #%d\n", problemID)
			} else {
				fmt.Printf("Noted problem #%d\n", problemID)
			}
			return nil
		},
	}
}

func newProblemPinCmd(app *App) *cobra.Command {
	var x, y float64
	var clear bool

	cmd := &cobra.Command{
		Use:   "pin [circuit] <n>",
		Short: "Set or clear a problem's map pin (percent of map size)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			circuitID, problemID, err := problemRef(app, args)
			if err != nil {
				return err
			}

			var loc *domain.Location
			if !clear {
				if !cmd.Flags().Changed("x") || !cmd.Flags().Changed("y") {
					return fmt.Errorf("pass --x and --y, or --clear")
				}
				loc = &domain.Location{X: x, Y: y}
			}

			if err := app.Circuits.SetProblemLocation(context.Background(), circuitID, problemID, loc); err != nil {
				return err
			}
			if clear {
				fmt.Printf("Cleared pin on problem #%d\n", problemID)
			} else {
				fmt.Printf("Pinned problem #%d at %.1f%%, %.1f%%\n", problemID, x, y)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "Horizontal position, 0-100")
	cmd.Flags().Float64Var(&y, "y", 0, "Vertical position, 0-100")
	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the pin")

	return cmd
}

func newProblemAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add [circuit]",
		Short: "Append one problem to a circuit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			circuitID, err := resolveCircuitID(app.Circuits, argOrEmpty(args))
			if err != nil {
				return err
			}
			if err := app.Circuits.GrowProblems(context.Background(), circuitID); err != nil {
				return err
			}
			c, err := app.Circuits.Circuit(circuitID)
			if err != nil {
				return err
			}
			fmt.Printf("Added problem #%d to %s\n", len(c.Problems), c.Name)
			return nil
		},
	}
}

func newProblemDropCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "drop [circuit]",
		Short: "Remove the highest-numbered problem from a circuit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			circuitID, err := resolveCircuitID(app.Circuits, argOrEmpty(args))
			if err != nil {
				return err
			}

			err = app.Circuits.ShrinkProblems(context.Background(), circuitID, yes)
			var confirmErr *domain.ConfirmationRequiredError
			if errors.As(err, &confirmErr) {
				ok, cerr := confirm(fmt.Sprintf("Problem #%d is marked as %s. Delete it?",
					confirmErr.ProblemID, confirmErr.Status), false)
				if cerr != nil {
					return cerr
				}
				if !ok {
					return nil
				}
				err = app.Circuits.ShrinkProblems(context.Background(), circuitID, true)
			}
			if err != nil {
				if errors.Is(err, domain.ErrMinimumCount) {
					return fmt.Errorf("cannot reduce the number of problems to 0")
				}
				return err
			}
			fmt.Println("Removed the last problem")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
