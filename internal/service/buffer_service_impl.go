package service

import (
	"context"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/contract"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/repository"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/scheduler"
)

type bufferService struct {
	stores repository.WorkItemStores
	deps   repository.DependencyRepo
}

func NewBufferService(stores repository.WorkItemStores, deps repository.DependencyRepo) BufferService {
	return &bufferService{stores: stores, deps: deps}
}

func (s *bufferService) EstimateWithDependencies(ctx context.Context, kind domain.ItemKind, itemID int64) (*contract.DependencyEstimate, error) {
	repo, err := storeFor(s.stores, kind)
	if err != nil {
		return nil, err
	}
	item, err := loadItem(ctx, repo, itemID)
	if err != nil {
		return nil, err
	}
	edges, err := s.deps.ListPrerequisites(ctx, kind, itemID)
	if err != nil {
		return nil, engineError(err, contract.ErrInternal, "listing prerequisites of %s %d", kind, itemID)
	}

	statuses := make([]domain.WorkItemStatus, len(edges))
	infos := make([]contract.DependencyInfo, len(edges))
	for i, e := range edges {
		statuses[i] = e.PrerequisiteStatus
		infos[i] = contract.DependencyInfo{
			PrerequisiteID: e.PrerequisiteID,
			Title:          e.PrerequisiteTitle,
			Status:         e.PrerequisiteStatus,
			EstimatedHours: e.PrerequisiteHours,
			Type:           e.Type,
			Complete:       e.Complete(),
		}
	}

	buf := scheduler.DependencyBuffer(item.BaseEffort(), statuses)
	return &contract.DependencyEstimate{
		ItemKind:        kind,
		ItemID:          itemID,
		BaseEffort:      buf.BaseEffort,
		BufferPercent:   buf.BufferPct,
		BufferHours:     buf.BufferHours,
		AdjustedEffort:  buf.AdjustedEffort,
		IncompleteCount: buf.Incomplete,
		Dependencies:    infos,
	}, nil
}
