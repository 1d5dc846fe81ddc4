package domain

import "time"

// WorkItem is an issue or action item. Both kinds share this shape and live
// in separate tables.
type WorkItem struct {
	ID          int64
	Kind        ItemKind
	ProjectID   int64
	Title       string
	Description string
	ParentID    *int64
	Status      WorkItemStatus
	Assignee    string
	IsEpic      bool

	// Effort
	EstimatedHours     float64
	RolledUpHours      float64
	EstimateVersion    int
	EstimateConfidence Confidence
	EstimateSource     EstimateSource
	LastEstimatedAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot reports whether the item has no parent.
func (w *WorkItem) IsRoot() bool {
	return w.ParentID == nil
}

// BaseEffort is the item's own estimate, or its rolled-up effort when it has
// never been estimated directly.
func (w *WorkItem) BaseEffort() float64 {
	if w.EstimatedHours > 0 {
		return w.EstimatedHours
	}
	return w.RolledUpHours
}

// AssigneeOrDefault returns the assignee label used for grouping.
func (w *WorkItem) AssigneeOrDefault() string {
	if w.Assignee == "" {
		return "unassigned"
	}
	return w.Assignee
}

// ApplyEstimate mirrors a newly persisted estimate onto the item.
func (w *WorkItem) ApplyEstimate(rec *EstimateHistoryRecord) {
	at := rec.CreatedAt
	w.EstimatedHours = rec.EstimateHours
	w.EstimateVersion = rec.Version
	w.EstimateConfidence = rec.Confidence
	w.EstimateSource = rec.Source
	w.LastEstimatedAt = &at
	w.UpdatedAt = rec.CreatedAt
}

// DescendantItem is a work item found under some ancestor, with its distance
// from that ancestor (children are depth 1).
type DescendantItem struct {
	WorkItem
	Depth int
}
