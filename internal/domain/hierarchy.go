package domain

import (
	"strconv"
	"strings"
)

// HierarchyNode is a derived view of a work item inside its tree. It is
// never persisted.
type HierarchyNode struct {
	Item        WorkItem
	Depth       int
	Path        []int64
	PathLabel   string
	OwnEffort   float64
	TotalEffort float64
	Children    []*HierarchyNode
}

// IDPath renders Path slash-separated, e.g. "12/15/20".
func (n *HierarchyNode) IDPath() string {
	parts := make([]string, len(n.Path))
	for i, id := range n.Path {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, "/")
}

// Walk visits n and every node below it in depth-first pre-order.
func (n *HierarchyNode) Walk(fn func(*HierarchyNode)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *HierarchyNode) Count() int {
	count := 0
	n.Walk(func(*HierarchyNode) { count++ })
	return count
}
