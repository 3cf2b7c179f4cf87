package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/crux/internal/service"
)

// resolveCircuitID resolves user input to a circuit id. Accepts an
// exact name (case-insensitive), an exact id, or an unambiguous id
// prefix. Empty input resolves to the current circuit.
func resolveCircuitID(circuits service.CircuitService, input string) (string, error) {
	if input == "" {
		if c := circuits.Current(); c != nil {
			return c.ID, nil
		}
		return "", fmt.Errorf("no circuit selected; pass a circuit name or id")
	}

	all := circuits.Circuits()

	// 1. Exact name match (case-insensitive)
	for _, c := range all {
		if strings.EqualFold(c.Name, input) {
			return c.ID, nil
		}
	}

	// 2. Exact id match
	for _, c := range all {
		if c.ID == input {
			return c.ID, nil
		}
	}

	// 3. ID prefix match
	var matches []string
	for _, c := range all {
		if strings.HasPrefix(c.ID, input) {
			matches = append(matches, c.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("circuit not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("circuit id prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
