package service

import (
	"context"
	"testing"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/contract"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) dependsOn(t *testing.T, kind domain.ItemKind, prerequisite, dependent int64) {
	t.Helper()
	require.NoError(t, f.deps.Create(context.Background(), &domain.Dependency{
		ProjectID: f.project.ID, ItemKind: kind, PrerequisiteID: prerequisite, DependentID: dependent,
	}))
}

func TestBufferService_NoDependencies(t *testing.T) {
	f := newFixture(t)
	item := testutil.CreateTestWorkItem(t, f.stores.Issues, f.project.ID, "Standalone", testutil.WithEstimatedHours(13.5))
	svc := NewBufferService(f.stores, f.deps)

	res, err := svc.EstimateWithDependencies(context.Background(), domain.KindIssue, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 13.5, res.BaseEffort)
	assert.Equal(t, res.BaseEffort, res.AdjustedEffort)
	assert.Zero(t, res.BufferPercent)
	assert.Empty(t, res.Dependencies)
}

func TestBufferService_IncompletePrerequisites(t *testing.T) {
	f := newFixture(t)
	repo := f.stores.Issues
	target := testutil.CreateTestWorkItem(t, repo, f.project.ID, "Ship feature", testutil.WithEstimatedHours(20))
	done := testutil.CreateTestWorkItem(t, repo, f.project.ID, "Schema", testutil.WithStatus(domain.StatusDone))
	open := testutil.CreateTestWorkItem(t, repo, f.project.ID, "API", testutil.WithStatus(domain.StatusInProgress), testutil.WithEstimatedHours(8))
	blocked := testutil.CreateTestWorkItem(t, repo, f.project.ID, "Vendor", testutil.WithStatus(domain.StatusBlocked))
	f.dependsOn(t, domain.KindIssue, done.ID, target.ID)
	f.dependsOn(t, domain.KindIssue, open.ID, target.ID)
	f.dependsOn(t, domain.KindIssue, blocked.ID, target.ID)
	svc := NewBufferService(f.stores, f.deps)

	res, err := svc.EstimateWithDependencies(context.Background(), domain.KindIssue, target.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, res.IncompleteCount)
	assert.Equal(t, 20.0, res.BufferPercent)
	assert.Equal(t, 4.0, res.BufferHours)
	assert.Equal(t, 24.0, res.AdjustedEffort)
	require.Len(t, res.Dependencies, 3)
	assert.True(t, res.Dependencies[0].Complete)
	assert.False(t, res.Dependencies[1].Complete)
	assert.Equal(t, "API", res.Dependencies[1].Title)
	assert.Equal(t, 8.0, res.Dependencies[1].EstimatedHours)
}

func TestBufferService_FallsBackToRolledUp(t *testing.T) {
	f := newFixture(t)
	repo := f.stores.ActionItems
	target := testutil.CreateTestWorkItem(t, repo, f.project.ID, "Parent action", testutil.WithRolledUpHours(10))
	pre := testutil.CreateTestWorkItem(t, repo, f.project.ID, "Prereq")
	f.dependsOn(t, domain.KindActionItem, pre.ID, target.ID)
	svc := NewBufferService(f.stores, f.deps)

	res, err := svc.EstimateWithDependencies(context.Background(), domain.KindActionItem, target.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, res.BaseEffort)
	assert.Equal(t, 11.0, res.AdjustedEffort)
}

func TestBufferService_NotFound(t *testing.T) {
	f := newFixture(t)
	svc := NewBufferService(f.stores, f.deps)

	_, err := svc.EstimateWithDependencies(context.Background(), domain.KindIssue, 404)
	assert.True(t, contract.IsKind(err, contract.ErrNotFound))
}
