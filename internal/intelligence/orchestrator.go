package intelligence

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/contract"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/llm"
	"go.uber.org/zap"
)

// Input thresholds, counted in characters after trimming.
const (
	MinTitleLength       = 5
	MinDescriptionLength = 20
)

// EstimateOrchestrator runs decomposition then estimation and merges the
// two into one result.
type EstimateOrchestrator struct {
	decomposer Decomposer
	estimator  Estimator
	logger     *zap.Logger
}

func NewEstimateOrchestrator(decomposer Decomposer, estimator Estimator, logger *zap.Logger) *EstimateOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EstimateOrchestrator{decomposer: decomposer, estimator: estimator, logger: logger}
}

// NewEstimateOrchestratorFromClient wires both phases to the same provider.
func NewEstimateOrchestratorFromClient(client llm.LLMClient, logger *zap.Logger) *EstimateOrchestrator {
	return NewEstimateOrchestrator(NewDecomposer(client), NewEstimator(client), logger)
}

// GenerateEffortEstimate returns an error only for invalid input. Every
// other failure is reported in the result with Success false.
func (o *EstimateOrchestrator) GenerateEffortEstimate(ctx context.Context, req contract.EstimateRequest) (*contract.EstimateResult, error) {
	start := time.Now()

	title := strings.TrimSpace(req.Title)
	if utf8.RuneCountInString(title) < MinTitleLength {
		return nil, contract.NewError(contract.ErrInvalidInput,
			fmt.Sprintf("title must be at least %d characters", MinTitleLength), nil)
	}
	description := strings.TrimSpace(req.Description)
	if utf8.RuneCountInString(description) < MinDescriptionLength {
		res := contract.Failure(contract.ErrInsufficientContext,
			fmt.Sprintf("description must be at least %d characters to estimate", MinDescriptionLength))
		res.Confidence = domain.ConfidenceLow
		return res, nil
	}

	in := DecomposeInput{Title: title, Description: description, ItemKind: req.ItemKind}
	decomposition, err := o.decomposer.Decompose(ctx, in)
	if err != nil {
		return o.fail(err, contract.ErrDecompositionFailed, start), nil
	}

	estimates, err := o.estimator.Estimate(ctx, decomposition)
	if err != nil {
		return o.fail(err, contract.ErrEstimationFailed, start), nil
	}

	breakdown, err := joinBreakdown(decomposition.Tasks, estimates.Estimates)
	if err != nil {
		return o.fail(err, contract.ErrEstimationFailed, start), nil
	}

	usage := decomposition.Usage.Add(estimates.Usage)
	res := &contract.EstimateResult{
		Success:             true,
		TotalHours:          estimates.TotalHours,
		Confidence:          estimates.Confidence,
		ConfidenceReasoning: estimates.ConfidenceReasoning,
		Breakdown:           breakdown,
		Assumptions:         decomposition.Assumptions,
		Risks:               decomposition.Risks,
		Metadata: contract.EstimateMetadata{
			PromptTokens:     usage.PromptTokens,
			CompletionTokens: usage.CompletionTokens,
			Tokens:           usage.Total(),
			Cost:             llm.Cost(decomposition.Usage, decomposition.Model) + llm.Cost(estimates.Usage, estimates.Model),
			Model:            domain.CoalesceStr(estimates.Model, decomposition.Model),
			ExecutionTimeMs:  time.Since(start).Milliseconds(),
		},
	}
	o.logger.Debug("estimate generated",
		zap.String("title", title),
		zap.Float64("total_hours", res.TotalHours),
		zap.Int("tasks", len(breakdown)),
		zap.Int("tokens", res.Metadata.Tokens),
	)
	return res, nil
}

func (o *EstimateOrchestrator) fail(err error, fallback contract.ErrorKind, start time.Time) *contract.EstimateResult {
	kind := contract.KindOf(err)
	if kind == contract.ErrInternal {
		kind = fallback
	}
	msg := err.Error()
	var ee *contract.EngineError
	if errors.As(err, &ee) {
		msg = ee.Message
		if ee.Err != nil {
			msg += ": " + ee.Err.Error()
		}
	}
	o.logger.Warn("estimate failed", zap.String("error_kind", string(kind)), zap.Error(err))

	res := contract.Failure(kind, msg)
	res.Metadata.ExecutionTimeMs = time.Since(start).Milliseconds()
	return res
}

// joinBreakdown pairs tasks with estimates by task id, in task order.
func joinBreakdown(tasks []DecomposedTask, estimates []TaskEstimate) ([]domain.BreakdownItem, error) {
	byID := make(map[string]TaskEstimate, len(estimates))
	for _, e := range estimates {
		byID[e.TaskID] = e
	}

	out := make([]domain.BreakdownItem, 0, len(tasks))
	for _, t := range tasks {
		e, ok := byID[t.ID]
		if !ok {
			return nil, contract.NewError(contract.ErrEstimationFailed,
				fmt.Sprintf("no estimate returned for task %s", t.ID), nil)
		}
		delete(byID, t.ID)
		out = append(out, domain.BreakdownItem{
			TaskID:     t.ID,
			Task:       t.Name,
			Hours:      e.Hours,
			Complexity: t.Complexity,
			Category:   t.Category,
			Reasoning:  e.Reasoning,
		})
	}
	if len(byID) > 0 {
		unknown := slices.Sorted(maps.Keys(byID))
		return nil, contract.NewError(contract.ErrEstimationFailed,
			fmt.Sprintf("estimate returned for unknown task %s", strings.Join(unknown, ", ")), nil)
	}
	return out, nil
}
