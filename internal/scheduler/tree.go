package scheduler

import (
	"sort"
	"strconv"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
)

// BuildTree assembles root and its descendants into a nested tree and, in
// the same depth-first pass, a flat pre-order list of every node. Siblings
// are ordered by ID. Path labels are dot separated sibling positions
// starting at "1" for the root. Subtree totals are rounded to 2 decimals.
// Descendants whose parent is not reachable from root are ignored.
func BuildTree(root domain.WorkItem, descendants []domain.DescendantItem) (*domain.HierarchyNode, []*domain.HierarchyNode) {
	children := make(map[int64][]domain.WorkItem)
	for _, d := range descendants {
		if d.ParentID == nil {
			continue
		}
		children[*d.ParentID] = append(children[*d.ParentID], d.WorkItem)
	}
	for _, c := range children {
		sort.Slice(c, func(i, j int) bool { return c[i].ID < c[j].ID })
	}

	var flat []*domain.HierarchyNode
	visited := make(map[int64]bool)

	var build func(item domain.WorkItem, depth int, path []int64, label string) *domain.HierarchyNode
	build = func(item domain.WorkItem, depth int, path []int64, label string) *domain.HierarchyNode {
		visited[item.ID] = true
		node := &domain.HierarchyNode{
			Item:      item,
			Depth:     depth,
			Path:      append(append([]int64(nil), path...), item.ID),
			PathLabel: label,
			OwnEffort: item.EstimatedHours,
		}
		flat = append(flat, node)

		node.TotalEffort = node.OwnEffort
		pos := 0
		for _, c := range children[item.ID] {
			if visited[c.ID] {
				continue
			}
			pos++
			child := build(c, depth+1, node.Path, label+"."+strconv.Itoa(pos))
			node.Children = append(node.Children, child)
			node.TotalEffort += child.TotalEffort
		}
		node.TotalEffort = domain.RoundTo(node.TotalEffort, 2)
		return node
	}

	tree := build(root, 0, nil, "1")
	return tree, flat
}
