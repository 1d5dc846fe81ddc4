package scheduler

import "github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"

// BufferPctPerIncomplete is the buffer, in percentage points, added for each
// prerequisite that is not yet closed.
const BufferPctPerIncomplete = 10.0

type BufferResult struct {
	BaseEffort     float64
	BufferPct      float64
	BufferHours    float64
	AdjustedEffort float64
	Incomplete     int
}

// DependencyBuffer pads base by BufferPctPerIncomplete for every status in
// prerequisites outside the closed-state set. BufferHours is rounded to two
// decimals. With no incomplete prerequisites the adjusted effort equals base
// exactly.
func DependencyBuffer(base float64, prerequisites []domain.WorkItemStatus) BufferResult {
	incomplete := 0
	for _, s := range prerequisites {
		if !s.IsClosed() {
			incomplete++
		}
	}

	res := BufferResult{BaseEffort: base, AdjustedEffort: base, Incomplete: incomplete}
	if incomplete == 0 {
		return res
	}
	res.BufferPct = float64(incomplete) * BufferPctPerIncomplete
	res.BufferHours = domain.RoundTo(base*res.BufferPct/100, 2)
	res.AdjustedEffort = base + res.BufferHours
	return res
}
