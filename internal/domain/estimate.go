package domain

import "time"

// BreakdownItem is one decomposed sub-task with its estimated hours.
type BreakdownItem struct {
	TaskID     string     `json:"taskId"`
	Task       string     `json:"task"`
	Hours      float64    `json:"hours"`
	Complexity Complexity `json:"complexity"`
	Category   string     `json:"category,omitempty"`
	Reasoning  string     `json:"reasoning,omitempty"`
}

// EstimateHistoryRecord is one immutable version of an item's estimate.
// Versions per item start at 1 and increase by one with no gaps.
type EstimateHistoryRecord struct {
	ID            string
	ItemKind      ItemKind
	ItemID        int64
	Version       int
	EstimateHours float64
	Confidence    Confidence
	Breakdown     []BreakdownItem
	Reasoning     string
	Assumptions   []string
	Risks         []string
	Source        EstimateSource
	CreatedBy     string
	CreatedAt     time.Time
}
