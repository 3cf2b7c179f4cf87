package service

import (
	"context"

	"github.com/alexanderramin/crux/internal/domain"
)

// CircuitService owns the in-memory store and writes every mutation
// through to persistence, so a crash loses at most one operation.
type CircuitService interface {
	// CreateCircuit allocates a circuit with problemCount unattempted
	// problems, makes it current and persists. A blank name gets a
	// generated one ("March 2026 Green Circuit").
	CreateCircuit(ctx context.Context, name string, problemCount int, color domain.ColorKey) (*domain.Circuit, error)

	// DeleteCircuit removes a circuit. Deleting the last remaining
	// circuit fails with ErrLastCircuit; deleting the current circuit
	// makes the first remaining one current.
	DeleteCircuit(ctx context.Context, id string) error

	// SelectCircuit makes a circuit current and stamps its LastViewed.
	SelectCircuit(ctx context.Context, id string) error

	// TouchLastViewed stamps LastViewed without changing the current
	// circuit.
	TouchLastViewed(ctx context.Context, id string) error

	// GrowProblems appends one unattempted problem numbered length+1.
	GrowProblems(ctx context.Context, circuitID string) error

	// ShrinkProblems removes the highest-numbered problem. It fails
	// with ErrMinimumCount at one problem, and with
	// *ConfirmationRequiredError when the tail problem carries
	// progress and confirmed is false.
	ShrinkProblems(ctx context.Context, circuitID string, confirmed bool) error

	SetProblemStatus(ctx context.Context, circuitID string, problemID int, status domain.Status) error
	SetProblemNote(ctx context.Context, circuitID string, problemID int, note string) error
	SetProblemLocation(ctx context.Context, circuitID string, problemID int, loc *domain.Location) error

	// CycleProblemStatus advances a problem one step through the tap
	// cycle and returns the new status.
	CycleProblemStatus(ctx context.Context, circuitID string, problemID int) (domain.Status, error)

	// ResetProgress sets every problem back to unattempted. Notes and
	// pins are durable metadata and survive a reset.
	ResetProgress(ctx context.Context, circuitID string) error

	// ExportText renders the whole store in the v1 text format.
	ExportText() (string, error)

	// ImportText parses the v1 text format and appends the recognized
	// circuits, generating fresh ids on collision. Returns how many
	// circuits were added. The store is untouched on failure.
	ImportText(ctx context.Context, data string) (int, error)

	// Circuits returns every circuit in store order.
	Circuits() []*domain.Circuit

	// Circuit returns a circuit by id, or ErrNotFound.
	Circuit(id string) (*domain.Circuit, error)

	// Current returns the current circuit, or nil when none is set.
	Current() *domain.Circuit
}
