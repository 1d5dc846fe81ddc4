package service

import (
	"context"
	"time"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/contract"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/db"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/repository"
	"go.uber.org/zap"
)

// Usage feature tags written to the telemetry sink.
const (
	FeatureEffortEstimation = "effort_estimation"
	FeatureEstimatePreview  = "effort_estimation_preview"
)

type estimateService struct {
	stores    repository.WorkItemStores
	history   repository.EstimateHistoryRepo
	uow       db.UnitOfWork
	generator EstimateGenerator
	usage     UsageSink
	logger    *zap.Logger
	observer  UseCaseObserver
	now       func() time.Time
}

// NewEstimateService wires estimate persistence. usage may be nil to
// disable telemetry. A nil generator leaves history readable while Preview
// and GenerateEstimateFromItem fail with provider_unavailable.
func NewEstimateService(
	stores repository.WorkItemStores,
	history repository.EstimateHistoryRepo,
	uow db.UnitOfWork,
	generator EstimateGenerator,
	usage UsageSink,
	logger *zap.Logger,
	observers ...UseCaseObserver,
) EstimateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &estimateService{
		stores:    stores,
		history:   history,
		uow:       uow,
		generator: generator,
		usage:     usage,
		logger:    logger,
		observer:  useCaseObserverOrNoop(observers),
		now:       func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

func (s *estimateService) Preview(ctx context.Context, req contract.EstimateRequest) (res *contract.EstimateResult, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "estimate-preview",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
		})
	}()

	if s.generator == nil {
		return nil, errProviderUnavailable()
	}
	res, err = s.generator.GenerateEffortEstimate(ctx, req)
	if err != nil {
		return nil, err
	}
	if res.Success {
		s.recordUsage(ctx, FeatureEstimatePreview, "", 0, res, map[string]any{"title": req.Title})
	}
	return res, nil
}

func (s *estimateService) GenerateEstimateFromItem(ctx context.Context, kind domain.ItemKind, itemID int64, opts contract.EstimateOptions) (out *contract.PersistedEstimate, err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"item_kind": string(kind),
		"item_id":   itemID,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "estimate-item",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	repo, err := storeFor(s.stores, kind)
	if err != nil {
		return nil, err
	}
	item, err := loadItem(ctx, repo, itemID)
	if err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, errProviderUnavailable()
	}

	res, err := s.generator.GenerateEffortEstimate(ctx, contract.EstimateRequest{
		Title:       item.Title,
		Description: item.Description,
		ItemKind:    kind,
	})
	if err != nil {
		return nil, err
	}
	if !res.Success {
		if res.Error == contract.ErrInsufficientContext {
			fields["persisted"] = false
			return &contract.PersistedEstimate{ItemKind: kind, ItemID: itemID, Result: res}, nil
		}
		return nil, contract.NewError(res.Error, res.Message, nil)
	}

	source := opts.Source
	if source == "" {
		source = domain.SourceManualRegenerate
	}
	rec := &domain.EstimateHistoryRecord{
		ItemKind:      kind,
		ItemID:        itemID,
		EstimateHours: res.TotalHours,
		Confidence:    res.Confidence,
		Breakdown:     res.Breakdown,
		Reasoning:     res.ConfidenceReasoning,
		Assumptions:   res.Assumptions,
		Risks:         res.Risks,
		Source:        source,
		CreatedBy:     domain.CoalesceStr(opts.CreatedBy, opts.UserID),
		CreatedAt:     s.now(),
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems, err := repository.NewWorkItemRepo(tx, kind)
		if err != nil {
			return err
		}
		txHistory := repository.NewSQLiteEstimateHistoryRepo(tx)

		current, err := txItems.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		expected := current.EstimateVersion
		rec.Version = expected + 1
		current.ApplyEstimate(rec)

		if err := txItems.UpdateEstimate(ctx, current, expected); err != nil {
			return err
		}
		return txHistory.Append(ctx, rec)
	})
	if err != nil {
		return nil, engineError(err, contract.ErrPersistenceFailed, "saving estimate for %s %d", kind, itemID)
	}

	fields["version"] = rec.Version
	fields["hours"] = rec.EstimateHours
	s.recordUsage(ctx, FeatureEffortEstimation, opts.UserID, item.ProjectID, res, map[string]any{
		"item_kind": string(kind),
		"item_id":   itemID,
		"version":   rec.Version,
	})

	return &contract.PersistedEstimate{
		ItemKind:  kind,
		ItemID:    itemID,
		Persisted: true,
		Version:   rec.Version,
		HistoryID: rec.ID,
		Result:    res,
	}, nil
}

func (s *estimateService) ListEstimateHistory(ctx context.Context, kind domain.ItemKind, itemID int64) ([]contract.EstimateHistoryEntry, error) {
	repo, err := storeFor(s.stores, kind)
	if err != nil {
		return nil, err
	}
	if _, err := loadItem(ctx, repo, itemID); err != nil {
		return nil, err
	}

	recs, err := s.history.ListByItem(ctx, kind, itemID)
	if err != nil {
		return nil, engineError(err, contract.ErrInternal, "listing estimate history for %s %d", kind, itemID)
	}
	out := make([]contract.EstimateHistoryEntry, 0, len(recs))
	for _, r := range recs {
		out = append(out, contract.NewEstimateHistoryEntry(r))
	}
	return out, nil
}

// recordUsage runs after any commit. Its failure is logged and dropped.
func (s *estimateService) recordUsage(ctx context.Context, feature, userID string, projectID int64, res *contract.EstimateResult, meta map[string]any) {
	if s.usage == nil {
		return
	}
	meta["execution_time_ms"] = res.Metadata.ExecutionTimeMs
	rec := domain.UsageRecord{
		UserID:           userID,
		ProjectID:        projectID,
		Feature:          feature,
		PromptTokens:     res.Metadata.PromptTokens,
		CompletionTokens: res.Metadata.CompletionTokens,
		TotalTokens:      res.Metadata.Tokens,
		CostAmount:       res.Metadata.Cost,
		Model:            res.Metadata.Model,
		Metadata:         meta,
	}
	if err := s.usage.Record(ctx, rec); err != nil {
		s.logger.Warn("recording ai usage failed",
			zap.String("feature", feature),
			zap.Int64("project_id", projectID),
			zap.Error(err),
		)
	}
}

func errProviderUnavailable() error {
	return contract.NewError(contract.ErrProviderUnavailable, "estimation is disabled: no completion provider configured", nil)
}
