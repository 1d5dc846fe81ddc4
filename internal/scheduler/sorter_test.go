package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeepestFirst(t *testing.T) {
	parents := []ParentDepth{
		{ID: 1, Depth: 0},
		{ID: 7, Depth: 2},
		{ID: 3, Depth: 1},
		{ID: 5, Depth: 2},
		{ID: 2, Depth: 0},
	}

	DeepestFirst(parents)

	assert.Equal(t, []ParentDepth{
		{ID: 5, Depth: 2},
		{ID: 7, Depth: 2},
		{ID: 3, Depth: 1},
		{ID: 1, Depth: 0},
		{ID: 2, Depth: 0},
	}, parents)
}

func TestDeepestFirst_Empty(t *testing.T) {
	var parents []ParentDepth
	DeepestFirst(parents)
	assert.Empty(t, parents)
}
