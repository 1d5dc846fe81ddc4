package service

import (
	"context"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/contract"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/repository"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/scheduler"
)

type hierarchyService struct {
	stores repository.WorkItemStores
}

func NewHierarchyService(stores repository.WorkItemStores) HierarchyService {
	return &hierarchyService{stores: stores}
}

func (s *hierarchyService) GetHierarchicalBreakdown(ctx context.Context, kind domain.ItemKind, itemID int64) (*contract.HierarchyResult, error) {
	repo, err := storeFor(s.stores, kind)
	if err != nil {
		return nil, err
	}
	item, err := loadItem(ctx, repo, itemID)
	if err != nil {
		return nil, err
	}

	root := item
	if !item.IsRoot() {
		ancestors, err := repo.ListAncestors(ctx, itemID)
		if err != nil {
			return nil, engineError(err, contract.ErrInternal, "listing ancestors of %s %d", kind, itemID)
		}
		if len(ancestors) > 0 {
			root = ancestors[len(ancestors)-1]
		}
	}

	descendants, err := repo.ListDescendants(ctx, root.ID)
	if err != nil {
		return nil, engineError(err, contract.ErrInternal, "listing descendants of %s %d", kind, root.ID)
	}

	tree, flat := scheduler.BuildTree(*root, descendants)
	items := make([]contract.HierarchyItem, len(flat))
	for i, n := range flat {
		items[i] = contract.NewHierarchyItem(n)
	}
	return &contract.HierarchyResult{
		ItemKind:    kind,
		RequestedID: itemID,
		RootID:      root.ID,
		TotalEffort: tree.TotalEffort,
		NodeCount:   len(flat),
		Tree:        contract.NewHierarchyTree(tree),
		Items:       items,
	}, nil
}
