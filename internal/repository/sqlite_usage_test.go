package repository

import (
	"context"
	"testing"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageRepo_RecordAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	proj := testutil.CreateTestProject(t, NewSQLiteProjectRepo(db), "Platform")
	repo := NewSQLiteUsageRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Record(ctx, domain.UsageRecord{
		UserID:           "u-1",
		ProjectID:        proj.ID,
		Feature:          "effort_estimation",
		PromptTokens:     1200,
		CompletionTokens: 300,
		CostAmount:       0.0042,
		Model:            "gpt-4o-mini",
		Metadata:         map[string]any{"item_kind": "issue", "item_id": float64(7)},
	}))
	require.NoError(t, repo.Record(ctx, domain.UsageRecord{Feature: "other"}))

	recs, err := repo.ListByFeature(ctx, "effort_estimation", 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, proj.ID, r.ProjectID)
	assert.Equal(t, 1500, r.TotalTokens)
	assert.InDelta(t, 0.0042, r.CostAmount, 1e-12)
	assert.Equal(t, "issue", r.Metadata["item_kind"])
	assert.Equal(t, float64(7), r.Metadata["item_id"])
}

func TestUsageRepo_NoProjectAndLimit(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUsageRepo(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Record(ctx, domain.UsageRecord{Feature: "effort_estimation", PromptTokens: i}))
	}

	recs, err := repo.ListByFeature(ctx, "effort_estimation", 2)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Zero(t, recs[0].ProjectID)
	assert.Empty(t, recs[0].Metadata)
}
