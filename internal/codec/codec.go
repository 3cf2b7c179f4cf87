// Package codec implements the line-oriented "BOULDERING CIRCUITS v1"
// text format used for plain-text backup and sharing.
//
// The grammar does not escape anything: a note containing a newline
// would break parsing on re-import. Notes are constrained to a single
// line at the edit boundary rather than escaped here, because escaping
// would break compatibility with files already in circulation.
package codec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/crux/internal/domain"
)

const (
	headerMarker   = "=== BOULDERING CIRCUITS v1 ==="
	circuitMarker  = "=== CIRCUIT ==="
	problemsMarker = "=== PROBLEMS ==="
	neverViewed    = "Never"
)

// problemLine matches "<id>: Status-<word> Note-<rest of line>".
var problemLine = regexp.MustCompile(`^(\d+): Status-(\w+) Note-(.*)$`)

// legacyTimeLayouts covers locale-formatted timestamps written by old
// exporters. New exports always use RFC 3339.
var legacyTimeLayouts = []string{
	"1/2/2006 3:04:05 PM",
	"1/2/2006, 3:04:05 PM",
	"02/01/2006 15:04:05",
	"02/01/2006, 15:04:05",
}

// Export renders circuits in the v1 text format.
func Export(circuits []*domain.Circuit) string {
	var b strings.Builder
	b.WriteString(headerMarker + "\n\n")

	for _, c := range circuits {
		b.WriteString(circuitMarker + "\n")
		fmt.Fprintf(&b, "ID: %s\n", c.ID)
		fmt.Fprintf(&b, "Name: %s\n", c.Name)
		fmt.Fprintf(&b, "Color: %s\n", c.Color)
		fmt.Fprintf(&b, "LastViewed: %s\n", formatLastViewed(c.LastViewed))
		b.WriteString("\n" + problemsMarker + "\n")
		for _, p := range c.Problems {
			fmt.Fprintf(&b, "%d: Status-%s Note-%s\n", p.ID, p.Status, p.Note)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func formatLastViewed(t *time.Time) string {
	if t == nil {
		return neverViewed
	}
	return t.UTC().Format(time.RFC3339)
}

type parseState int

const (
	stateHeader parseState = iota
	stateCircuit
	stateProblems
)

// Parse decodes the v1 text format. Parsing is lenient: unrecognized
// keys and malformed problem lines are skipped, and circuits recognized
// before a bad line are kept. It fails only when the input carries no
// recognizable circuit at all. Map pins are not part of the wire
// format, so every imported problem comes back without one.
func Parse(data string) ([]*domain.Circuit, error) {
	var (
		circuits []*domain.Circuit
		current  *domain.Circuit
		state    = stateHeader
	)

	for _, line := range strings.Split(data, "\n") {
		switch {
		case strings.HasPrefix(line, headerMarker):
			state = stateCircuit
		case strings.HasPrefix(line, circuitMarker):
			state = stateCircuit
			current = &domain.Circuit{Problems: []*domain.Problem{}}
			circuits = append(circuits, current)
		case strings.HasPrefix(line, problemsMarker):
			state = stateProblems
		case state == stateCircuit && current != nil:
			parseCircuitField(current, line)
		case state == stateProblems && current != nil:
			if p := parseProblemLine(line); p != nil {
				current.Problems = append(current.Problems, p)
			}
		}
	}

	if len(circuits) == 0 {
		return nil, fmt.Errorf("no circuits recognized: not a circuits export file")
	}
	return circuits, nil
}

// parseCircuitField splits a "Key: value" line on the first ": " and
// applies recognized keys. Values may themselves contain ": ", so only
// the first occurrence splits. Unknown keys are ignored for forward
// compatibility.
func parseCircuitField(c *domain.Circuit, line string) {
	key, value, ok := strings.Cut(line, ": ")
	if !ok {
		return
	}
	switch key {
	case "ID":
		c.ID = value
	case "Name":
		c.Name = value
	case "Color":
		c.Color = domain.ColorKey(value)
	case "LastViewed":
		c.LastViewed = parseLastViewed(value)
	}
}

func parseLastViewed(value string) *time.Time {
	if value == neverViewed {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		u := t.UTC()
		return &u
	}
	for _, layout := range legacyTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			u := t.UTC()
			return &u
		}
	}
	return nil
}

func parseProblemLine(line string) *domain.Problem {
	m := problemLine.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &domain.Problem{
		ID:     id,
		Status: domain.Status(m[2]),
		Note:   strings.TrimSpace(m[3]),
	}
}
