package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/crux/internal/codec"
	"github.com/alexanderramin/crux/internal/domain"
	"github.com/alexanderramin/crux/internal/repository"
	"github.com/google/uuid"
)

type circuitService struct {
	store *domain.Store
	repo  repository.CircuitRepo
	now   func() time.Time
}

// NewCircuitService loads the persisted store and returns a service
// bound to it.
func NewCircuitService(ctx context.Context, repo repository.CircuitRepo) (CircuitService, error) {
	store, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &circuitService{store: store, repo: repo, now: time.Now}, nil
}

func (s *circuitService) persist(ctx context.Context) error {
	return s.repo.Save(ctx, s.store)
}

func (s *circuitService) CreateCircuit(ctx context.Context, name string, problemCount int, color domain.ColorKey) (*domain.Circuit, error) {
	if problemCount <= 0 {
		return nil, domain.Validationf("problem count must be positive, got %d", problemCount)
	}
	if name == "" {
		name = domain.DefaultCircuitName(color, s.now())
	}

	now := s.now().UTC()
	c := &domain.Circuit{
		ID:         uuid.New().String(),
		Name:       name,
		Color:      color,
		Problems:   domain.NewProblems(problemCount),
		LastViewed: &now,
	}
	s.store.Circuits = append(s.store.Circuits, c)
	s.store.CurrentCircuitID = c.ID

	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *circuitService) DeleteCircuit(ctx context.Context, id string) error {
	if !s.store.HasID(id) {
		return fmt.Errorf("circuit %q: %w", id, domain.ErrNotFound)
	}
	if len(s.store.Circuits) <= 1 {
		return domain.ErrLastCircuit
	}

	remaining := s.store.Circuits[:0]
	for _, c := range s.store.Circuits {
		if c.ID != id {
			remaining = append(remaining, c)
		}
	}
	s.store.Circuits = remaining

	// Deleting the current circuit falls back to the first remaining
	// one, in store order.
	if s.store.CurrentCircuitID == id {
		s.store.CurrentCircuitID = s.store.Circuits[0].ID
	}

	return s.persist(ctx)
}

func (s *circuitService) SelectCircuit(ctx context.Context, id string) error {
	c := s.store.Circuit(id)
	if c == nil {
		return fmt.Errorf("circuit %q: %w", id, domain.ErrNotFound)
	}
	s.store.CurrentCircuitID = id
	now := s.now().UTC()
	c.LastViewed = &now
	return s.persist(ctx)
}

func (s *circuitService) TouchLastViewed(ctx context.Context, id string) error {
	c := s.store.Circuit(id)
	if c == nil {
		return fmt.Errorf("circuit %q: %w", id, domain.ErrNotFound)
	}
	now := s.now().UTC()
	c.LastViewed = &now
	return s.persist(ctx)
}

func (s *circuitService) GrowProblems(ctx context.Context, circuitID string) error {
	c := s.store.Circuit(circuitID)
	if c == nil {
		return fmt.Errorf("circuit %q: %w", circuitID, domain.ErrNotFound)
	}
	c.Problems = append(c.Problems, &domain.Problem{
		ID:     len(c.Problems) + 1,
		Status: domain.StatusUnattempted,
	})
	return s.persist(ctx)
}

func (s *circuitService) ShrinkProblems(ctx context.Context, circuitID string, confirmed bool) error {
	c := s.store.Circuit(circuitID)
	if c == nil {
		return fmt.Errorf("circuit %q: %w", circuitID, domain.ErrNotFound)
	}
	if len(c.Problems) <= 1 {
		return domain.ErrMinimumCount
	}

	last := c.Problems[len(c.Problems)-1]
	if last.Status != domain.StatusUnattempted && !confirmed {
		return &domain.ConfirmationRequiredError{ProblemID: last.ID, Status: last.Status}
	}

	c.Problems = c.Problems[:len(c.Problems)-1]
	c.Renumber()
	return s.persist(ctx)
}

func (s *circuitService) problem(circuitID string, problemID int) (*domain.Problem, error) {
	c := s.store.Circuit(circuitID)
	if c == nil {
		return nil, fmt.Errorf("circuit %q: %w", circuitID, domain.ErrNotFound)
	}
	p := c.Problem(problemID)
	if p == nil {
		return nil, fmt.Errorf("problem #%d in circuit %q: %w", problemID, circuitID, domain.ErrNotFound)
	}
	return p, nil
}

func (s *circuitService) SetProblemStatus(ctx context.Context, circuitID string, problemID int, status domain.Status) error {
	if !status.Known() {
		return domain.Validationf("unknown status %q", status)
	}
	p, err := s.problem(circuitID, problemID)
	if err != nil {
		return err
	}
	p.Status = status
	return s.persist(ctx)
}

func (s *circuitService) SetProblemNote(ctx context.Context, circuitID string, problemID int, note string) error {
	p, err := s.problem(circuitID, problemID)
	if err != nil {
		return err
	}
	p.Note = note
	return s.persist(ctx)
}

func (s *circuitService) SetProblemLocation(ctx context.Context, circuitID string, problemID int, loc *domain.Location) error {
	if loc != nil && (loc.X < 0 || loc.X > 100 || loc.Y < 0 || loc.Y > 100) {
		return domain.Validationf("pin coordinates must be 0-100 percent, got (%.1f, %.1f)", loc.X, loc.Y)
	}
	p, err := s.problem(circuitID, problemID)
	if err != nil {
		return err
	}
	p.Location = loc
	return s.persist(ctx)
}

func (s *circuitService) CycleProblemStatus(ctx context.Context, circuitID string, problemID int) (domain.Status, error) {
	p, err := s.problem(circuitID, problemID)
	if err != nil {
		return "", err
	}
	p.Status = p.Status.Next()
	if err := s.persist(ctx); err != nil {
		return "", err
	}
	return p.Status, nil
}

func (s *circuitService) ResetProgress(ctx context.Context, circuitID string) error {
	c := s.store.Circuit(circuitID)
	if c == nil {
		return fmt.Errorf("circuit %q: %w", circuitID, domain.ErrNotFound)
	}
	for _, p := range c.Problems {
		p.Status = domain.StatusUnattempted
	}
	return s.persist(ctx)
}

func (s *circuitService) ExportText() (string, error) {
	if len(s.store.Circuits) == 0 {
		return "", domain.Validationf("no circuits to export")
	}
	return codec.Export(s.store.Circuits), nil
}

func (s *circuitService) ImportText(ctx context.Context, data string) (int, error) {
	parsed, err := codec.Parse(data)
	if err != nil {
		return 0, err
	}

	// Imported circuits keep their exported id unless it is missing or
	// collides with anything already present, including ids assigned
	// earlier in this same import.
	seen := make(map[string]bool, len(s.store.Circuits))
	for _, c := range s.store.Circuits {
		seen[c.ID] = true
	}
	for _, c := range parsed {
		if c.ID == "" || seen[c.ID] {
			c.ID = uuid.New().String()
		}
		seen[c.ID] = true
	}

	s.store.Circuits = append(s.store.Circuits, parsed...)
	if err := s.persist(ctx); err != nil {
		return 0, err
	}
	return len(parsed), nil
}

func (s *circuitService) Circuits() []*domain.Circuit {
	return s.store.Circuits
}

func (s *circuitService) Circuit(id string) (*domain.Circuit, error) {
	c := s.store.Circuit(id)
	if c == nil {
		return nil, fmt.Errorf("circuit %q: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

func (s *circuitService) Current() *domain.Circuit {
	return s.store.Current()
}
