package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/contract"
)

// FormatDependencyEstimate renders base effort, the buffer for open
// prerequisites and the prerequisites themselves.
func FormatDependencyEstimate(d *contract.DependencyEstimate) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Dependency estimate %s %d", d.ItemKind, d.ItemID)) + "\n")

	if len(d.Dependencies) > 0 {
		rows := make([][]string, 0, len(d.Dependencies))
		for _, dep := range d.Dependencies {
			state := StyleYellow.Render("open")
			if dep.Complete {
				state = StyleGreen.Render("complete")
			}
			rows = append(rows, []string{
				strconv.FormatInt(dep.PrerequisiteID, 10),
				dep.Title,
				StatusPill(dep.Status),
				string(dep.Type),
				state,
			})
		}
		b.WriteString(RenderTable([]string{"ID", "Prerequisite", "Status", "Type", "State"}, rows, 1))
		b.WriteString("\n")
	} else {
		b.WriteString(Dim("No prerequisites.") + "\n\n")
	}

	fmt.Fprintf(&b, "Base:     %s\n", FormatHours(d.BaseEffort))
	fmt.Fprintf(&b, "Buffer:   %s (%s for %d open)\n", FormatHours(d.BufferHours), FormatPercent(d.BufferPercent), d.IncompleteCount)
	fmt.Fprintf(&b, "%s %s  %s\n", Bold("Adjusted:"), Bold(FormatHours(d.AdjustedEffort)), RenderBufferBar(d.BaseEffort, d.BufferHours, 20))
	return b.String()
}
