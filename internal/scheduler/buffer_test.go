package scheduler

import (
	"testing"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDependencyBuffer_NoPrerequisites(t *testing.T) {
	res := DependencyBuffer(12.5, nil)

	assert.Equal(t, 12.5, res.AdjustedEffort)
	assert.Zero(t, res.BufferPct)
	assert.Zero(t, res.BufferHours)
	assert.Zero(t, res.Incomplete)
}

func TestDependencyBuffer_AllClosed(t *testing.T) {
	res := DependencyBuffer(10, []domain.WorkItemStatus{domain.StatusDone, domain.StatusClosed, domain.StatusCancelled})

	assert.Equal(t, 10.0, res.AdjustedEffort)
	assert.Zero(t, res.Incomplete)
}

func TestDependencyBuffer_PerIncompletePrerequisite(t *testing.T) {
	res := DependencyBuffer(20, []domain.WorkItemStatus{
		domain.StatusTodo, domain.StatusInProgress, domain.StatusDone, domain.StatusBlocked,
	})

	assert.Equal(t, 3, res.Incomplete)
	assert.Equal(t, 30.0, res.BufferPct)
	assert.Equal(t, 6.0, res.BufferHours)
	assert.Equal(t, 26.0, res.AdjustedEffort)
}

func TestDependencyBuffer_RoundsBufferHours(t *testing.T) {
	res := DependencyBuffer(3.333, []domain.WorkItemStatus{domain.StatusTodo})

	assert.Equal(t, 0.33, res.BufferHours)
	assert.InDelta(t, 3.663, res.AdjustedEffort, 1e-9)
}

func TestDependencyBuffer_ZeroBase(t *testing.T) {
	res := DependencyBuffer(0, []domain.WorkItemStatus{domain.StatusTodo, domain.StatusReview})

	assert.Equal(t, 20.0, res.BufferPct)
	assert.Zero(t, res.BufferHours)
	assert.Zero(t, res.AdjustedEffort)
}

func TestDependencyBuffer_Monotonic(t *testing.T) {
	statuses := []domain.WorkItemStatus{}
	prev := DependencyBuffer(8, statuses).AdjustedEffort
	for i := 0; i < 6; i++ {
		statuses = append(statuses, domain.StatusTodo)
		cur := DependencyBuffer(8, statuses).AdjustedEffort
		assert.Greater(t, cur, prev, "adding an incomplete prerequisite must increase effort")
		prev = cur
	}
}
