package service

import (
	"context"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/contract"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
)

// EstimateGenerator produces an estimate without touching storage.
// *intelligence.EstimateOrchestrator implements it.
type EstimateGenerator interface {
	GenerateEffortEstimate(ctx context.Context, req contract.EstimateRequest) (*contract.EstimateResult, error)
}

// UsageSink receives AI usage telemetry. Failures are logged, never
// returned to the caller.
type UsageSink interface {
	Record(ctx context.Context, rec domain.UsageRecord) error
}

type EstimateService interface {
	// Preview runs the estimation workflow on free text and persists nothing.
	Preview(ctx context.Context, req contract.EstimateRequest) (*contract.EstimateResult, error)

	// GenerateEstimateFromItem estimates a stored item and, on success,
	// bumps its version and appends a history record in one transaction.
	// A thin description yields Persisted false with the soft-failure result.
	GenerateEstimateFromItem(ctx context.Context, kind domain.ItemKind, itemID int64, opts contract.EstimateOptions) (*contract.PersistedEstimate, error)

	// ListEstimateHistory returns every version, oldest first.
	ListEstimateHistory(ctx context.Context, kind domain.ItemKind, itemID int64) ([]contract.EstimateHistoryEntry, error)
}

// RollupService aggregates effort bottom-up. Reads are not isolated from
// concurrent re-parenting; a rollup racing a structural change may under or
// over count.
type RollupService interface {
	CalculateRollupEffort(ctx context.Context, kind domain.ItemKind, parentID int64, opts contract.RollupOptions) (*contract.RollupResult, error)

	// UpdateAllParentEfforts recomputes every parent in the project, deepest
	// first, writing each parent's rolled-up hours.
	UpdateAllParentEfforts(ctx context.Context, kind domain.ItemKind, projectID int64) (*contract.BatchRollupResult, error)
}

type BufferService interface {
	EstimateWithDependencies(ctx context.Context, kind domain.ItemKind, itemID int64) (*contract.DependencyEstimate, error)
}

// HierarchyService is read-only and shares RollupService's consistency level.
type HierarchyService interface {
	GetHierarchicalBreakdown(ctx context.Context, kind domain.ItemKind, itemID int64) (*contract.HierarchyResult, error)
}
