package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultCircuitName builds a display name like "March 2026 Green
// Circuit" from the current month and the circuit color. Gradient
// labels contribute only their first word.
func DefaultCircuitName(color ColorKey, now time.Time) string {
	colorName := color.Label()
	if i := strings.IndexByte(colorName, ' '); i > 0 {
		colorName = colorName[:i]
	}
	return fmt.Sprintf("%s %d %s Circuit", now.Month(), now.Year(), colorName)
}
