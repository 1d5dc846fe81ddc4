package contract

import "github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"

type RollupOptions struct {
	UpdateParent bool `json:"updateParent"`
}

// RollupChild is one descendant counted in a rollup.
type RollupChild struct {
	ID             int64                 `json:"id"`
	ParentID       int64                 `json:"parentId"`
	Title          string                `json:"title"`
	Depth          int                   `json:"depth"`
	Status         domain.WorkItemStatus `json:"status"`
	Assignee       string                `json:"assignee"`
	EstimatedHours float64               `json:"estimatedHours"`
}

// RollupResult sums the own estimates of every descendant of ParentID.
// SkippedZeroWrite is set when UpdateParent was requested but the total was
// zero, so the stored rolled-up value was left untouched.
type RollupResult struct {
	ItemKind         domain.ItemKind    `json:"itemKind"`
	ParentID         int64              `json:"parentId"`
	TotalHours       float64            `json:"totalHours"`
	ChildCount       int                `json:"childCount"`
	IsLeafNode       bool               `json:"isLeafNode"`
	ByAssignee       map[string]float64 `json:"byAssignee"`
	Breakdown        []RollupChild      `json:"breakdown"`
	Updated          bool               `json:"updated"`
	SkippedZeroWrite bool               `json:"skippedZeroWrite"`
}

// ParentRollup is the outcome for one parent in a batch rollup.
type ParentRollup struct {
	ParentID   int64   `json:"parentId"`
	Depth      int     `json:"depth"`
	TotalHours float64 `json:"totalHours"`
	Updated    bool    `json:"updated"`
	Error      string  `json:"error,omitempty"`
}

// BatchRollupResult lists parents in the order they were processed,
// deepest first.
type BatchRollupResult struct {
	ProjectID        int64           `json:"projectId"`
	Project          string          `json:"project"`
	ItemKind         domain.ItemKind `json:"itemKind"`
	ParentsProcessed int             `json:"parentsProcessed"`
	ParentsUpdated   int             `json:"parentsUpdated"`
	Failed           int             `json:"failed"`
	Parents          []ParentRollup  `json:"parents"`
}
