package scheduler

import "github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"

type RollupTotals struct {
	Total      float64
	ByAssignee map[string]float64
}

// SumDescendants adds up the own estimates of every descendant. Rolled-up
// values are ignored so nested parents are never double counted.
func SumDescendants(items []domain.DescendantItem) RollupTotals {
	totals := RollupTotals{ByAssignee: make(map[string]float64)}
	for _, it := range items {
		totals.Total += it.EstimatedHours
		totals.ByAssignee[it.AssigneeOrDefault()] += it.EstimatedHours
	}
	totals.Total = domain.RoundTo(totals.Total, 2)
	for k, v := range totals.ByAssignee {
		totals.ByAssignee[k] = domain.RoundTo(v, 2)
	}
	return totals
}
