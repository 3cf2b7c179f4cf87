package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals that a circuit or problem id resolved to
	// nothing. Mutations report it explicitly rather than silently
	// skipping the write.
	ErrNotFound = errors.New("not found")

	// ErrLastCircuit rejects deleting the only remaining circuit.
	ErrLastCircuit = errors.New("cannot delete the last remaining circuit")

	// ErrMinimumCount rejects shrinking a circuit below one problem.
	ErrMinimumCount = errors.New("cannot reduce the number of problems to 0")
)

// ConfirmationRequiredError signals that removing the highest-numbered
// problem needs explicit user confirmation because the problem carries
// progress. It is a prompt to retry with confirmation, not a hard
// failure.
type ConfirmationRequiredError struct {
	ProblemID int
	Status    Status
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("problem #%d is marked as %s; confirmation required to delete it", e.ProblemID, e.Status)
}

// ValidationError rejects bad input before any mutation happens.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
