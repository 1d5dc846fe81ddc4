package service

import (
	"context"
	"errors"
	"testing"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/contract"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/llm"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestEstimateService_GenerateEstimateFromItem(t *testing.T) {
	f := newFixture(t)
	item := testutil.CreateTestWorkItem(t, f.stores.Issues, f.project.ID, "Add CSV export")
	client := testutil.NewScriptedLLM(estimateReplies()...)
	svc := f.estimateService(client, nil, zaptest.NewLogger(t))
	ctx := context.Background()

	out, err := svc.GenerateEstimateFromItem(ctx, domain.KindIssue, item.ID, contract.EstimateOptions{CreatedBy: "u-7", UserID: "u-7"})
	require.NoError(t, err)

	assert.True(t, out.Persisted)
	assert.Equal(t, 1, out.Version)
	assert.NotEmpty(t, out.HistoryID)
	assert.Equal(t, 28.0, out.Result.TotalHours)

	stored, err := f.stores.Issues.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 28.0, stored.EstimatedHours)
	assert.Equal(t, 1, stored.EstimateVersion)
	assert.Equal(t, domain.ConfidenceHigh, stored.EstimateConfidence)
	assert.Equal(t, domain.SourceManualRegenerate, stored.EstimateSource)
	require.NotNil(t, stored.LastEstimatedAt)

	recs, err := f.history.ListByItem(ctx, domain.KindIssue, item.ID)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, out.HistoryID, recs[0].ID)
	assert.Equal(t, 28.0, recs[0].EstimateHours)
	assert.Len(t, recs[0].Breakdown, 3)
	assert.Equal(t, "familiar stack", recs[0].Reasoning)
	assert.Equal(t, []string{"rate limits"}, recs[0].Risks)
	assert.Equal(t, "u-7", recs[0].CreatedBy)

	usage, err := f.usage.ListByFeature(ctx, FeatureEffortEstimation, 0)
	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.Equal(t, 1300, usage[0].TotalTokens)
	assert.Equal(t, f.project.ID, usage[0].ProjectID)
	assert.Equal(t, "u-7", usage[0].UserID)
	assert.Greater(t, usage[0].CostAmount, 0.0)
	assert.Equal(t, "issue", usage[0].Metadata["item_kind"])
}

func TestEstimateService_VersionSequence(t *testing.T) {
	f := newFixture(t)
	item := testutil.CreateTestWorkItem(t, f.stores.ActionItems, f.project.ID, "Prepare release notes")
	client := testutil.NewScriptedLLM(repeatReplies(3)...)
	svc := f.estimateService(client, nil, zap.NewNop())
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		out, err := svc.GenerateEstimateFromItem(ctx, domain.KindActionItem, item.ID, contract.EstimateOptions{})
		require.NoError(t, err)
		assert.Equal(t, want, out.Version)
	}

	history, err := svc.ListEstimateHistory(ctx, domain.KindActionItem, item.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i, h := range history {
		assert.Equal(t, i+1, h.Version)
	}

	stored, err := f.stores.ActionItems.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.EstimateVersion)
	assert.Equal(t, history[2].EstimateHours, stored.EstimatedHours)
}

func TestEstimateService_ThinDescriptionIsNotPersisted(t *testing.T) {
	f := newFixture(t)
	item := testutil.CreateTestWorkItem(t, f.stores.Issues, f.project.ID, "Fix login", testutil.WithDescription("broken"))
	client := testutil.NewScriptedLLM()
	svc := f.estimateService(client, nil, zap.NewNop())
	ctx := context.Background()

	out, err := svc.GenerateEstimateFromItem(ctx, domain.KindIssue, item.ID, contract.EstimateOptions{})
	require.NoError(t, err)

	assert.False(t, out.Persisted)
	assert.False(t, out.Result.Success)
	assert.Equal(t, contract.ErrInsufficientContext, out.Result.Error)
	assert.Equal(t, domain.ConfidenceLow, out.Result.Confidence)
	assert.Zero(t, client.Calls())

	recs, err := f.history.ListByItem(ctx, domain.KindIssue, item.ID)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestEstimateService_ShortTitle(t *testing.T) {
	f := newFixture(t)
	item := testutil.CreateTestWorkItem(t, f.stores.Issues, f.project.ID, "Bug")
	svc := f.estimateService(testutil.NewScriptedLLM(), nil, zap.NewNop())

	_, err := svc.GenerateEstimateFromItem(context.Background(), domain.KindIssue, item.ID, contract.EstimateOptions{})
	require.Error(t, err)
	assert.True(t, contract.IsKind(err, contract.ErrInvalidInput))
}

func TestEstimateService_ProviderFailureLeavesItemUntouched(t *testing.T) {
	f := newFixture(t)
	item := testutil.CreateTestWorkItem(t, f.stores.Issues, f.project.ID, "Add CSV export",
		testutil.WithEstimatedHours(5), testutil.WithEstimateVersion(0))
	client := testutil.NewScriptedLLM(testutil.Reply{Err: llm.ErrTimeout})
	svc := f.estimateService(client, nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.GenerateEstimateFromItem(ctx, domain.KindIssue, item.ID, contract.EstimateOptions{})
	require.Error(t, err)
	assert.True(t, contract.IsKind(err, contract.ErrDecompositionFailed))

	stored, err := f.stores.Issues.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, stored.EstimatedHours)
	assert.Zero(t, stored.EstimateVersion)
}

func TestEstimateService_HistoryFailureRollsBackVersionBump(t *testing.T) {
	f := newFixture(t)
	item := testutil.CreateTestWorkItem(t, f.stores.Issues, f.project.ID, "Add CSV export")
	client := testutil.NewScriptedLLM(repeatReplies(2)...)
	ctx := context.Background()

	// First estimate succeeds so there is a prior version to protect.
	first, err := f.estimateService(client, nil, zap.NewNop()).
		GenerateEstimateFromItem(ctx, domain.KindIssue, item.ID, contract.EstimateOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, first.Version)

	uow := &testutil.FailingUoW{
		DB:     f.db,
		FailOn: 1,
		Match:  "INSERT INTO estimate_history",
		Err:    errors.New("disk I/O error"),
	}
	_, err = f.estimateService(client, uow, zap.NewNop()).
		GenerateEstimateFromItem(ctx, domain.KindIssue, item.ID, contract.EstimateOptions{})
	require.Error(t, err)
	assert.True(t, contract.IsKind(err, contract.ErrPersistenceFailed))
	assert.Equal(t, int32(1), uow.Execs())

	stored, err := f.stores.Issues.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.EstimateVersion, "version bump must roll back with the history insert")

	recs, err := f.history.ListByItem(ctx, domain.KindIssue, item.ID)
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	usage, err := f.usage.ListByFeature(ctx, FeatureEffortEstimation, 0)
	require.NoError(t, err)
	assert.Len(t, usage, 1, "no telemetry for a rolled back estimate")
}

func TestEstimateService_ItemUpdateFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	item := testutil.CreateTestWorkItem(t, f.stores.Issues, f.project.ID, "Add CSV export")
	client := testutil.NewScriptedLLM(estimateReplies()...)
	uow := &testutil.FailingUoW{DB: f.db, FailOn: 1, Match: "UPDATE issues", Err: errors.New("database is locked")}
	ctx := context.Background()

	_, err := f.estimateService(client, uow, zap.NewNop()).
		GenerateEstimateFromItem(ctx, domain.KindIssue, item.ID, contract.EstimateOptions{})
	require.Error(t, err)
	assert.True(t, contract.IsKind(err, contract.ErrPersistenceFailed))

	recs, err := f.history.ListByItem(ctx, domain.KindIssue, item.ID)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestEstimateService_NotFoundAndBadKind(t *testing.T) {
	f := newFixture(t)
	svc := f.estimateService(testutil.NewScriptedLLM(), nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.GenerateEstimateFromItem(ctx, domain.KindIssue, 404, contract.EstimateOptions{})
	assert.True(t, contract.IsKind(err, contract.ErrNotFound))

	_, err = svc.GenerateEstimateFromItem(ctx, "story", 1, contract.EstimateOptions{})
	assert.True(t, contract.IsKind(err, contract.ErrInvalidInput))

	_, err = svc.ListEstimateHistory(ctx, domain.KindActionItem, 404)
	assert.True(t, contract.IsKind(err, contract.ErrNotFound))
}

type failingSink struct{}

func (failingSink) Record(context.Context, domain.UsageRecord) error {
	return errors.New("telemetry down")
}

func TestEstimateService_UsageFailureIsLoggedNotReturned(t *testing.T) {
	f := newFixture(t)
	item := testutil.CreateTestWorkItem(t, f.stores.Issues, f.project.ID, "Add CSV export")
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)
	orchestrated := f.estimateService(testutil.NewScriptedLLM(estimateReplies()...), nil, logger).(*estimateService)
	orchestrated.usage = failingSink{}

	out, err := orchestrated.GenerateEstimateFromItem(context.Background(), domain.KindIssue, item.ID, contract.EstimateOptions{})
	require.NoError(t, err)
	assert.True(t, out.Persisted)

	entries := logs.FilterMessage("recording ai usage failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, FeatureEffortEstimation, entries[0].ContextMap()["feature"])
}

func TestEstimateService_PreviewPersistsNothing(t *testing.T) {
	f := newFixture(t)
	svc := f.estimateService(testutil.NewScriptedLLM(estimateReplies()...), nil, zap.NewNop())
	ctx := context.Background()

	res, err := svc.Preview(ctx, contract.EstimateRequest{
		Title:       "Add CSV export",
		Description: "Export the visible issue list to CSV, including custom fields.",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 28.0, res.TotalHours)

	items, err := f.stores.Issues.ListByProject(ctx, f.project.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	usage, err := f.usage.ListByFeature(ctx, FeatureEstimatePreview, 0)
	require.NoError(t, err)
	assert.Len(t, usage, 1)
}
