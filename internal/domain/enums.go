package domain

import "fmt"

// ItemKind selects which work-item table an operation targets.
type ItemKind string

const (
	KindIssue      ItemKind = "issue"
	KindActionItem ItemKind = "action-item"
)

// ItemKinds lists every supported kind in a stable order.
var ItemKinds = []ItemKind{KindIssue, KindActionItem}

// ParseItemKind accepts the canonical kind names plus the plural route forms
// ("issues", "action-items") and the underscore spelling used by the table.
func ParseItemKind(s string) (ItemKind, error) {
	switch s {
	case "issue", "issues":
		return KindIssue, nil
	case "action-item", "action-items", "action_item", "action_items":
		return KindActionItem, nil
	default:
		return "", fmt.Errorf("unknown item kind %q", s)
	}
}

// Valid reports whether k is one of the closed set of kinds.
func (k ItemKind) Valid() bool {
	return k == KindIssue || k == KindActionItem
}

type WorkItemStatus string

const (
	StatusTodo       WorkItemStatus = "todo"
	StatusInProgress WorkItemStatus = "in_progress"
	StatusBlocked    WorkItemStatus = "blocked"
	StatusReview     WorkItemStatus = "review"
	StatusDone       WorkItemStatus = "done"
	StatusClosed     WorkItemStatus = "closed"
	StatusCancelled  WorkItemStatus = "cancelled"
)

// ClosedStatuses is the set of statuses that count as complete for
// dependency purposes.
var ClosedStatuses = map[WorkItemStatus]bool{
	StatusDone:      true,
	StatusClosed:    true,
	StatusCancelled: true,
}

// IsClosed reports whether s is in the closed-state set.
func (s WorkItemStatus) IsClosed() bool {
	return ClosedStatuses[s]
}

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ParseConfidence validates a confidence label.
func ParseConfidence(s string) (Confidence, error) {
	switch Confidence(s) {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return Confidence(s), nil
	default:
		return "", fmt.Errorf("unknown confidence %q", s)
	}
}

type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// ValidComplexities is the canonical set of accepted complexity labels.
var ValidComplexities = map[Complexity]bool{
	ComplexityLow:    true,
	ComplexityMedium: true,
	ComplexityHigh:   true,
}

type EstimateSource string

const (
	SourceManualRegenerate EstimateSource = "manual_regenerate"
	SourceAIGenerated      EstimateSource = "ai_generated"
	SourceManual           EstimateSource = "manual"
)

type DependencyType string

const (
	DependencyFinishToStart DependencyType = "finish_to_start"
	DependencyStartToStart  DependencyType = "start_to_start"
	DependencyBlocks        DependencyType = "blocks"
)
