package formatter

import (
	"fmt"
	"strings"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/contract"
)

// FormatHierarchy renders the breakdown tree with each node's subtree
// total as a badge. The requested item is marked with "◀".
func FormatHierarchy(h *contract.HierarchyResult) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Hierarchy %s %d", h.ItemKind, h.RootID)) + "\n")
	if h.Tree == nil {
		return b.String()
	}

	var items []TreeItem
	var walk func(n *contract.HierarchyTree, level int, isLast bool, open []bool)
	walk = func(n *contract.HierarchyTree, level int, isLast bool, open []bool) {
		title := n.Title
		if n.ID == h.RequestedID && h.RequestedID != h.RootID {
			title += " " + StylePurple.Render("◀")
		}
		detail := FormatHours(n.TotalEffort)
		if len(n.Children) > 0 {
			detail = fmt.Sprintf("%s own · %s total", FormatHours(n.OwnEffort), FormatHours(n.TotalEffort))
		}
		items = append(items, TreeItem{
			Title:  title,
			Label:  n.Path,
			Level:  level,
			IsLast: isLast,
			Open:   open,
			Status: string(n.Status),
			Detail: detail,
		})

		childOpen := open
		if level > 0 {
			childOpen = append(append([]bool(nil), open...), !isLast)
		}
		for i, c := range n.Children {
			walk(c, level+1, i == len(n.Children)-1, childOpen)
		}
	}
	walk(h.Tree, 0, true, nil)

	b.WriteString(RenderTree(items))
	fmt.Fprintf(&b, "\n%s %s across %d items\n", Bold("Total:"), Bold(FormatHours(h.TotalEffort)), h.NodeCount)
	return b.String()
}
