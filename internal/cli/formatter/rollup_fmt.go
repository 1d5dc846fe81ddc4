package formatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/contract"
)

// FormatRollup renders one parent's rollup: contributing descendants and a
// per-assignee split.
func FormatRollup(r *contract.RollupResult) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Rollup %s %d", r.ItemKind, r.ParentID)) + "\n")
	if r.IsLeafNode {
		b.WriteString(Dim("Leaf item: no descendants to roll up.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(r.Breakdown))
	for _, c := range r.Breakdown {
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			strings.Repeat("  ", max(c.Depth-1, 0)) + c.Title,
			StatusPill(c.Status),
			c.Assignee,
			FormatHours(c.EstimatedHours),
		})
	}
	b.WriteString(RenderTable([]string{"ID", "Title", "Status", "Assignee", "Hours"}, rows, 1, 5))
	b.WriteString("\n")

	assignees := make([]string, 0, len(r.ByAssignee))
	for a := range r.ByAssignee {
		assignees = append(assignees, a)
	}
	sort.Strings(assignees)
	split := make([][]string, 0, len(assignees))
	for _, a := range assignees {
		split = append(split, []string{a, FormatHours(r.ByAssignee[a])})
	}
	b.WriteString(RenderTable([]string{"Assignee", "Hours"}, split, 2))
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s %s across %d descendants\n", Bold("Total:"), Bold(FormatHours(r.TotalHours)), r.ChildCount)
	switch {
	case r.Updated:
		b.WriteString(StyleGreen.Render("✔ Parent updated") + "\n")
	case r.SkippedZeroWrite:
		b.WriteString(StyleYellow.Render("○ Zero total, stored rollup left unchanged") + "\n")
	}
	return b.String()
}

// FormatBatchRollup renders parents in processing order.
func FormatBatchRollup(r *contract.BatchRollupResult) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Project %s %s rollup", r.Project, r.ItemKind)) + "\n")
	if len(r.Parents) == 0 {
		b.WriteString(Dim("No parents to roll up.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(r.Parents))
	for _, p := range r.Parents {
		outcome := StyleDim.Render("unchanged")
		switch {
		case p.Error != "":
			outcome = StyleRed.Render("✖ " + p.Error)
		case p.Updated:
			outcome = StyleGreen.Render("✔ updated")
		}
		rows = append(rows, []string{
			strconv.FormatInt(p.ParentID, 10),
			strconv.Itoa(p.Depth),
			FormatHours(p.TotalHours),
			outcome,
		})
	}
	b.WriteString(RenderTable([]string{"Parent", "Depth", "Hours", "Outcome"}, rows, 1, 2, 3))
	fmt.Fprintf(&b, "\n%d processed, %d updated, %d failed\n", r.ParentsProcessed, r.ParentsUpdated, r.Failed)
	return b.String()
}
