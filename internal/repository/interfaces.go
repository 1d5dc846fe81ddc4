package repository

import (
	"context"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	GetByKey(ctx context.Context, key string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
}

// WorkItemRepo is implemented once per item kind. Each implementation is
// bound to a single table.
type WorkItemRepo interface {
	Kind() domain.ItemKind
	Create(ctx context.Context, w *domain.WorkItem) error
	GetByID(ctx context.Context, id int64) (*domain.WorkItem, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.WorkItem, error)
	ListChildren(ctx context.Context, parentID int64) ([]*domain.WorkItem, error)

	// ListDescendants returns every transitive descendant of rootID with its
	// depth below rootID, ordered by depth then id.
	ListDescendants(ctx context.Context, rootID int64) ([]domain.DescendantItem, error)

	// ListAncestors returns the ancestors of id, nearest first.
	ListAncestors(ctx context.Context, id int64) ([]*domain.WorkItem, error)

	// ListParentIDs returns the distinct ids that have at least one child in
	// the project.
	ListParentIDs(ctx context.Context, projectID int64) ([]int64, error)

	Update(ctx context.Context, w *domain.WorkItem) error

	// UpdateEstimate writes the mirrored estimate fields only if the stored
	// version still equals expectedVersion. w.EstimateVersion is the new
	// version.
	UpdateEstimate(ctx context.Context, w *domain.WorkItem, expectedVersion int) error

	UpdateRolledUpHours(ctx context.Context, id int64, hours float64) error
	Delete(ctx context.Context, id int64) error
}

type EstimateHistoryRepo interface {
	Append(ctx context.Context, rec *domain.EstimateHistoryRecord) error

	// ListByItem returns every version of one item, oldest first.
	ListByItem(ctx context.Context, kind domain.ItemKind, itemID int64) ([]*domain.EstimateHistoryRecord, error)
}

type DependencyRepo interface {
	Create(ctx context.Context, d *domain.Dependency) error
	Delete(ctx context.Context, kind domain.ItemKind, prerequisiteID, dependentID int64) error

	// ListPrerequisites returns the edges into dependentID joined with each
	// prerequisite's title, status and estimate.
	ListPrerequisites(ctx context.Context, kind domain.ItemKind, dependentID int64) ([]domain.Dependency, error)
}

type UsageRepo interface {
	Record(ctx context.Context, rec domain.UsageRecord) error
	ListByFeature(ctx context.Context, feature string, limit int) ([]domain.UsageRecord, error)
}
