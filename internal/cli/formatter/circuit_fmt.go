package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/crux/internal/domain"
	"github.com/alexanderramin/crux/internal/stats"
)

// FormatLastViewed renders a LastViewed timestamp for humans, or
// "never" when the circuit has not been opened.
func FormatLastViewed(t *time.Time) string {
	if t == nil {
		return StyleDim.Render("never")
	}
	return t.Local().Format("2006-01-02 15:04")
}

// CircuitRow builds the table row for one circuit in the list view.
func CircuitRow(c *domain.Circuit, current bool) []string {
	comp := stats.CompletionStats(c)
	marker := " "
	if current {
		marker = StyleHeader.Render(">")
	}
	return []string{
		marker,
		CircuitSwatch(c.Color),
		StyleBold.Render(c.Name),
		shortID(c.ID),
		fmt.Sprintf("%d/%d %s", comp.Sent, comp.Total, RenderProgress(float64(comp.Percent)/100, 10)),
		fmt.Sprintf("%d", stats.CountByStatus(c, domain.StatusProject)),
		FormatLastViewed(c.LastViewed),
	}
}

// RenderCircuitList renders the recency-sorted circuit table.
func RenderCircuitList(circuits []*domain.Circuit, currentID string) string {
	headers := []string{" ", " ", "NAME", "ID", "PROGRESS", "PROJ", "LAST VIEWED"}
	rows := make([][]string, 0, len(circuits))
	for _, c := range stats.SortByRecency(circuits) {
		rows = append(rows, CircuitRow(c, c.ID == currentID))
	}
	return RenderTable(headers, rows)
}

// RenderProblemGrid renders a circuit's problems, one line each, with
// the status glyph, note and pin coordinates.
func RenderProblemGrid(c *domain.Circuit, enabled map[domain.Status]bool) string {
	var b strings.Builder

	comp := stats.CompletionStats(c)
	fmt.Fprintf(&b, "%s %s  %s\n\n",
		CircuitSwatch(c.Color),
		StyleBold.Render(c.Name),
		RenderProgress(float64(comp.Percent)/100, 16))

	for _, p := range stats.FilterByStatus(c.Problems, enabled) {
		style := StatusStyle(p.Status)
		fmt.Fprintf(&b, "  %s %s %s",
			style.Render(fmt.Sprintf("%3d", p.ID)),
			style.Render(StatusGlyph(p.Status)),
			style.Render(string(p.Status)))
		if p.Location != nil {
			fmt.Fprintf(&b, "  %s", StyleDim.Render(fmt.Sprintf("pin %.1f%%, %.1f%%", p.Location.X, p.Location.Y)))
		}
		if p.Note != "" {
			fmt.Fprintf(&b, "  %s", StyleFg.Render(p.Note))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func shortID(id string) string {
	if len(id) >= 8 {
		return StyleDim.Render(id[:8])
	}
	return StyleDim.Render(id)
}
