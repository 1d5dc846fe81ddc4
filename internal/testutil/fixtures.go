package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
)

// ProjectCreator and WorkItemCreator are the slices of the repositories the
// fixtures need. testutil must not import repository, whose own tests use it.
type ProjectCreator interface {
	Create(ctx context.Context, p *domain.Project) error
}

type WorkItemCreator interface {
	Kind() domain.ItemKind
	Create(ctx context.Context, w *domain.WorkItem) error
}

var testProjectCounter atomic.Int64

// NewTestProject returns an unsaved project with a unique key.
func NewTestProject(name string) *domain.Project {
	n := testProjectCounter.Add(1)
	return &domain.Project{
		Key:  fmt.Sprintf("TST%02d", n%10000),
		Name: name,
	}
}

// CreateTestProject saves a new project and returns it.
func CreateTestProject(t *testing.T, repo ProjectCreator, name string) *domain.Project {
	t.Helper()
	p := NewTestProject(name)
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("creating project %q: %v", name, err)
	}
	return p
}

// WorkItem options
type WorkItemOption func(*domain.WorkItem)

func WithParent(id int64) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.ParentID = &id
	}
}

func WithStatus(s domain.WorkItemStatus) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.Status = s
	}
}

func WithAssignee(a string) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.Assignee = a
	}
}

func WithDescription(d string) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.Description = d
	}
}

func WithEstimatedHours(h float64) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.EstimatedHours = h
	}
}

func WithRolledUpHours(h float64) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.RolledUpHours = h
	}
}

func WithEstimateVersion(v int) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.EstimateVersion = v
	}
}

func AsEpic() WorkItemOption {
	return func(w *domain.WorkItem) {
		w.IsEpic = true
	}
}

// NewTestWorkItem returns an unsaved item in projectID.
func NewTestWorkItem(projectID int64, title string, opts ...WorkItemOption) *domain.WorkItem {
	now := time.Now().UTC().Truncate(time.Second)
	w := &domain.WorkItem{
		ProjectID:   projectID,
		Title:       title,
		Description: "Default description long enough to estimate from.",
		Status:      domain.StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// CreateTestWorkItem saves a new item through repo and returns it.
func CreateTestWorkItem(t *testing.T, repo WorkItemCreator, projectID int64, title string, opts ...WorkItemOption) *domain.WorkItem {
	t.Helper()
	w := NewTestWorkItem(projectID, title, opts...)
	if err := repo.Create(context.Background(), w); err != nil {
		t.Fatalf("creating %s %q: %v", repo.Kind(), title, err)
	}
	return w
}
