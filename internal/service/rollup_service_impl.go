package service

import (
	"context"
	"time"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/contract"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/repository"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/scheduler"
)

type rollupService struct {
	projects repository.ProjectRepo
	stores   repository.WorkItemStores
	observer UseCaseObserver
}

func NewRollupService(projects repository.ProjectRepo, stores repository.WorkItemStores, observers ...UseCaseObserver) RollupService {
	return &rollupService{projects: projects, stores: stores, observer: useCaseObserverOrNoop(observers)}
}

func (s *rollupService) CalculateRollupEffort(ctx context.Context, kind domain.ItemKind, parentID int64, opts contract.RollupOptions) (*contract.RollupResult, error) {
	repo, err := storeFor(s.stores, kind)
	if err != nil {
		return nil, err
	}
	return s.rollup(ctx, repo, parentID, opts)
}

func (s *rollupService) rollup(ctx context.Context, repo repository.WorkItemRepo, parentID int64, opts contract.RollupOptions) (*contract.RollupResult, error) {
	if _, err := loadItem(ctx, repo, parentID); err != nil {
		return nil, err
	}
	descendants, err := repo.ListDescendants(ctx, parentID)
	if err != nil {
		return nil, engineError(err, contract.ErrInternal, "listing descendants of %s %d", repo.Kind(), parentID)
	}

	res := &contract.RollupResult{
		ItemKind:   repo.Kind(),
		ParentID:   parentID,
		ByAssignee: map[string]float64{},
		Breakdown:  []contract.RollupChild{},
	}
	if len(descendants) == 0 {
		res.IsLeafNode = true
		return res, nil
	}

	totals := scheduler.SumDescendants(descendants)
	res.TotalHours = totals.Total
	res.ChildCount = len(descendants)
	res.ByAssignee = totals.ByAssignee
	for _, d := range descendants {
		var parent int64
		if d.ParentID != nil {
			parent = *d.ParentID
		}
		res.Breakdown = append(res.Breakdown, contract.RollupChild{
			ID:             d.ID,
			ParentID:       parent,
			Title:          d.Title,
			Depth:          d.Depth,
			Status:         d.Status,
			Assignee:       d.AssigneeOrDefault(),
			EstimatedHours: d.EstimatedHours,
		})
	}

	if !opts.UpdateParent {
		return res, nil
	}
	// A zero total never overwrites a stored rollup.
	if res.TotalHours <= 0 {
		res.SkippedZeroWrite = true
		return res, nil
	}
	if err := repo.UpdateRolledUpHours(ctx, parentID, res.TotalHours); err != nil {
		return nil, engineError(err, contract.ErrPersistenceFailed, "writing rollup for %s %d", repo.Kind(), parentID)
	}
	res.Updated = true
	return res, nil
}

func (s *rollupService) UpdateAllParentEfforts(ctx context.Context, kind domain.ItemKind, projectID int64) (out *contract.BatchRollupResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"item_kind":  string(kind),
		"project_id": projectID,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "rollup-all",
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
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, engineError(err, contract.ErrInternal, "loading project %d", projectID)
	}

	parentIDs, err := repo.ListParentIDs(ctx, projectID)
	if err != nil {
		return nil, engineError(err, contract.ErrInternal, "listing parents in project %d", projectID)
	}
	items, err := repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, engineError(err, contract.ErrInternal, "listing %s items in project %d", kind, projectID)
	}

	order := parentDepths(parentIDs, items)
	scheduler.DeepestFirst(order)

	out = &contract.BatchRollupResult{
		ProjectID: projectID,
		Project:   project.DisplayID(),
		ItemKind:  kind,
		Parents:   make([]contract.ParentRollup, 0, len(order)),
	}
	for _, p := range order {
		if err := ctx.Err(); err != nil {
			return nil, contract.NewError(contract.ErrInternal, "batch rollup interrupted", err)
		}
		entry := contract.ParentRollup{ParentID: p.ID, Depth: p.Depth}
		res, rerr := s.rollup(ctx, repo, p.ID, contract.RollupOptions{UpdateParent: true})
		switch {
		case rerr != nil:
			entry.Error = rerr.Error()
			out.Failed++
		default:
			entry.TotalHours = res.TotalHours
			entry.Updated = res.Updated
			if res.Updated {
				out.ParentsUpdated++
			}
		}
		out.ParentsProcessed++
		out.Parents = append(out.Parents, entry)
	}

	fields["parents"] = out.ParentsProcessed
	fields["updated"] = out.ParentsUpdated
	fields["failed"] = out.Failed
	return out, nil
}

// parentDepths computes each parent's distance from its topmost ancestor
// using the project's parent links.
func parentDepths(parentIDs []int64, items []*domain.WorkItem) []scheduler.ParentDepth {
	parentOf := make(map[int64]int64, len(items))
	for _, it := range items {
		if it.ParentID != nil {
			parentOf[it.ID] = *it.ParentID
		}
	}

	out := make([]scheduler.ParentDepth, 0, len(parentIDs))
	for _, id := range parentIDs {
		depth := 0
		seen := map[int64]bool{id: true}
		for cur, ok := parentOf[id]; ok && !seen[cur]; cur, ok = parentOf[cur] {
			seen[cur] = true
			depth++
		}
		out = append(out, scheduler.ParentDepth{ID: id, Depth: depth})
	}
	return out
}
