package scheduler

import "sort"

// ParentDepth is a parent item and its distance from its topmost root.
type ParentDepth struct {
	ID    int64
	Depth int
}

// DeepestFirst orders parents for a bottom-up rollup:
// 1. Depth: deeper first
// 2. ID: ascending
func DeepestFirst(parents []ParentDepth) {
	sort.SliceStable(parents, func(i, j int) bool {
		a, b := parents[i], parents[j]
		if a.Depth != b.Depth {
			return a.Depth > b.Depth
		}
		return a.ID < b.ID
	})
}
