// Package stats holds the read-only derivations the display layer
// needs: per-status counts, completion percentages and the sorted or
// filtered views. Everything here is a pure function over circuits.
package stats

import (
	"math"
	"sort"

	"github.com/alexanderramin/crux/internal/domain"
)

// Completion summarizes a circuit's progress. Sent counts both sent
// and flashed problems.
type Completion struct {
	Sent    int
	Total   int
	Percent int
}

// CountByStatus returns how many of the circuit's problems carry the
// given status.
func CountByStatus(c *domain.Circuit, status domain.Status) int {
	n := 0
	for _, p := range c.Problems {
		if p.Status == status {
			n++
		}
	}
	return n
}

// CompletionStats computes the sent-or-flashed completion figure. A
// circuit with no problems is 0% complete by convention.
func CompletionStats(c *domain.Circuit) Completion {
	stats := Completion{
		Sent:  CountByStatus(c, domain.StatusSent) + CountByStatus(c, domain.StatusFlashed),
		Total: len(c.Problems),
	}
	if stats.Total > 0 {
		stats.Percent = int(math.Round(float64(stats.Sent) / float64(stats.Total) * 100))
	}
	return stats
}

// SortByRecency returns a new slice with most recently viewed circuits
// first. Never-viewed circuits trail in their original relative order.
func SortByRecency(circuits []*domain.Circuit) []*domain.Circuit {
	sorted := make([]*domain.Circuit, len(circuits))
	copy(sorted, circuits)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].LastViewed, sorted[j].LastViewed
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return sorted
}

// FilterByStatus returns the problems whose status is enabled, in
// ascending id order.
func FilterByStatus(problems []*domain.Problem, enabled map[domain.Status]bool) []*domain.Problem {
	var filtered []*domain.Problem
	for _, p := range problems {
		if enabled[p.Status] {
			filtered = append(filtered, p)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID < filtered[j].ID })
	return filtered
}
