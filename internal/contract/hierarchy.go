package contract

import "github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"

// HierarchyItem is one node of a breakdown, as it appears in the flat list.
type HierarchyItem struct {
	ID          int64                 `json:"id"`
	ParentID    *int64                `json:"parentId,omitempty"`
	Title       string                `json:"title"`
	Status      domain.WorkItemStatus `json:"status"`
	Assignee    string                `json:"assignee,omitempty"`
	IsEpic      bool                  `json:"isEpic,omitempty"`
	Depth       int                   `json:"depth"`
	Path        string                `json:"path"`
	IDPath      string                `json:"idPath"`
	OwnEffort   float64               `json:"ownEffort"`
	TotalEffort float64               `json:"totalEffort"`
	ChildCount  int                   `json:"childCount"`
}

// HierarchyTree is the nested form of the same nodes.
type HierarchyTree struct {
	HierarchyItem
	Children []*HierarchyTree `json:"children"`
}

// HierarchyResult holds both views of the tree containing RequestedID,
// rooted at its topmost ancestor.
type HierarchyResult struct {
	ItemKind    domain.ItemKind `json:"itemKind"`
	RequestedID int64           `json:"requestedId"`
	RootID      int64           `json:"rootId"`
	TotalEffort float64         `json:"totalEffort"`
	NodeCount   int             `json:"nodeCount"`
	Tree        *HierarchyTree  `json:"tree"`
	Items       []HierarchyItem `json:"items"`
}

// NewHierarchyItem flattens a node.
func NewHierarchyItem(n *domain.HierarchyNode) HierarchyItem {
	return HierarchyItem{
		ID:          n.Item.ID,
		ParentID:    n.Item.ParentID,
		Title:       n.Item.Title,
		Status:      n.Item.Status,
		Assignee:    n.Item.Assignee,
		IsEpic:      n.Item.IsEpic,
		Depth:       n.Depth,
		Path:        n.PathLabel,
		IDPath:      n.IDPath(),
		OwnEffort:   n.OwnEffort,
		TotalEffort: n.TotalEffort,
		ChildCount:  len(n.Children),
	}
}

// NewHierarchyTree converts a node and its subtree.
func NewHierarchyTree(n *domain.HierarchyNode) *HierarchyTree {
	t := &HierarchyTree{HierarchyItem: NewHierarchyItem(n), Children: make([]*HierarchyTree, 0, len(n.Children))}
	for _, c := range n.Children {
		t.Children = append(t.Children, NewHierarchyTree(c))
	}
	return t
}
