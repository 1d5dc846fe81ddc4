package contract

import "github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"

type DependencyInfo struct {
	PrerequisiteID int64                 `json:"prerequisiteId"`
	Title          string                `json:"title"`
	Status         domain.WorkItemStatus `json:"status"`
	EstimatedHours float64               `json:"estimatedHours"`
	Type           domain.DependencyType `json:"type"`
	Complete       bool                  `json:"complete"`
}

// DependencyEstimate is an item's effort adjusted for incomplete
// prerequisites.
type DependencyEstimate struct {
	ItemKind        domain.ItemKind  `json:"itemKind"`
	ItemID          int64            `json:"itemId"`
	BaseEffort      float64          `json:"baseEffort"`
	BufferPercent   float64          `json:"bufferPercent"`
	BufferHours     float64          `json:"bufferHours"`
	AdjustedEffort  float64          `json:"adjustedEffort"`
	IncompleteCount int              `json:"incompleteCount"`
	Dependencies    []DependencyInfo `json:"dependencies"`
}
