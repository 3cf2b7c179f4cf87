package domain

import "time"

// Location is a map pin position in percent of the map image's natural
// dimensions, 0-100 on each axis. Percentages survive re-layout and
// resolution changes, unlike the raw pixel pairs older saved data used.
type Location struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Problem is one numbered climb within a circuit. IDs are 1-based
// positions and are renumbered to stay contiguous when the tail of the
// circuit is removed.
type Problem struct {
	ID       int
	Status   Status
	Note     string
	Location *Location
}

// Circuit is a named, colored set of numbered problems tracked
// together. LastViewed is nil until the circuit is first opened.
type Circuit struct {
	ID         string
	Name       string
	Color      ColorKey
	Problems   []*Problem
	LastViewed *time.Time
}

// NewProblems returns count problems numbered 1..count, all
// unattempted with no note or pin.
func NewProblems(count int) []*Problem {
	problems := make([]*Problem, 0, count)
	for i := 1; i <= count; i++ {
		problems = append(problems, &Problem{ID: i, Status: StatusUnattempted})
	}
	return problems
}

// Problem returns the problem with the given 1-based id, or nil.
func (c *Circuit) Problem(id int) *Problem {
	for _, p := range c.Problems {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Renumber restores the contiguous 1..N numbering invariant after a
// removal.
func (c *Circuit) Renumber() {
	for i, p := range c.Problems {
		p.ID = i + 1
	}
}

// Store is the full tracked state: every circuit plus the pointer to
// the one currently being viewed (empty string when none).
type Store struct {
	Circuits         []*Circuit
	CurrentCircuitID string
}

// Circuit returns the circuit with the given id, or nil.
func (s *Store) Circuit(id string) *Circuit {
	for _, c := range s.Circuits {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Current returns the circuit the CurrentCircuitID points at, or nil
// when unset or dangling.
func (s *Store) Current() *Circuit {
	if s.CurrentCircuitID == "" {
		return nil
	}
	return s.Circuit(s.CurrentCircuitID)
}

// HasID reports whether any circuit carries the given id.
func (s *Store) HasID(id string) bool {
	return s.Circuit(id) != nil
}
