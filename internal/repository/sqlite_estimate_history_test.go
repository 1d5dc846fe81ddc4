package repository

import (
	"context"
	"testing"
	"time"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyRecord(kind domain.ItemKind, itemID int64, version int, hours float64) *domain.EstimateHistoryRecord {
	return &domain.EstimateHistoryRecord{
		ItemKind:      kind,
		ItemID:        itemID,
		Version:       version,
		EstimateHours: hours,
		Confidence:    domain.ConfidenceHigh,
		Breakdown: []domain.BreakdownItem{
			{TaskID: "T1", Task: "Design", Hours: hours / 2, Complexity: domain.ComplexityLow},
			{TaskID: "T2", Task: "Build", Hours: hours / 2, Complexity: domain.ComplexityHigh, Category: "development"},
		},
		Reasoning:   "well understood",
		Assumptions: []string{"reuses auth"},
		Source:      domain.SourceManualRegenerate,
		CreatedBy:   "u-42",
	}
}

func TestEstimateHistoryRepo_AppendAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEstimateHistoryRepo(db)
	ctx := context.Background()

	for v := 1; v <= 3; v++ {
		require.NoError(t, repo.Append(ctx, historyRecord(domain.KindIssue, 7, v, float64(v*10))))
	}
	require.NoError(t, repo.Append(ctx, historyRecord(domain.KindActionItem, 7, 1, 99)))

	recs, err := repo.ListByItem(ctx, domain.KindIssue, 7)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	for i, r := range recs {
		assert.Equal(t, i+1, r.Version)
		assert.NotEmpty(t, r.ID)
		assert.Equal(t, domain.KindIssue, r.ItemKind)
	}

	first := recs[0]
	assert.Equal(t, 10.0, first.EstimateHours)
	assert.Equal(t, "Build", first.Breakdown[1].Task)
	assert.Equal(t, "development", first.Breakdown[1].Category)
	assert.Equal(t, []string{"reuses auth"}, first.Assumptions)
	assert.Empty(t, first.Risks)
	assert.Equal(t, "u-42", first.CreatedBy)
	assert.WithinDuration(t, time.Now(), first.CreatedAt, time.Minute)
}

func TestEstimateHistoryRepo_DuplicateVersionRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEstimateHistoryRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, historyRecord(domain.KindIssue, 1, 1, 5)))
	err := repo.Append(ctx, historyRecord(domain.KindIssue, 1, 1, 6))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE")
}

func TestEstimateHistoryRepo_ListEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteEstimateHistoryRepo(db)

	recs, err := repo.ListByItem(context.Background(), domain.KindIssue, 1)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
