package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/contract"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/repository"
)

// engineError converts a storage error into the engine taxonomy. Errors
// already classified pass through unchanged.
func engineError(err error, fallback contract.ErrorKind, format string, args ...any) error {
	if err == nil {
		return nil
	}
	var ee *contract.EngineError
	if errors.As(err, &ee) {
		return err
	}
	msg := fmt.Sprintf(format, args...)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return contract.NewError(contract.ErrNotFound, msg, err)
	case errors.Is(err, repository.ErrVersionConflict):
		return contract.NewError(contract.ErrPersistenceFailed, msg, err)
	default:
		return contract.NewError(fallback, msg, err)
	}
}

// storeFor validates kind and returns its repository.
func storeFor(stores repository.WorkItemStores, kind domain.ItemKind) (repository.WorkItemRepo, error) {
	if !kind.Valid() {
		return nil, contract.NewError(contract.ErrInvalidInput, fmt.Sprintf("unknown item kind %q", kind), nil)
	}
	repo, err := stores.For(kind)
	if err != nil {
		return nil, contract.NewError(contract.ErrInternal, "work item store unavailable", err)
	}
	return repo, nil
}

// loadItem fetches an item, mapping a missing row to not_found.
func loadItem(ctx context.Context, repo repository.WorkItemRepo, id int64) (*domain.WorkItem, error) {
	item, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, engineError(err, contract.ErrInternal, "loading %s %d", repo.Kind(), id)
	}
	return item, nil
}
