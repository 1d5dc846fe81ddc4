package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/db"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
)

// workItemColumns is the canonical SELECT column list, prefixed with "w." so
// it works in joins and CTE queries alike.
const workItemColumns = `w.id, w.project_id, w.parent_id, w.title, w.description,
		w.status, w.assignee, w.is_epic,
		w.estimated_hours, w.rolled_up_hours, w.estimate_version,
		w.estimate_confidence, w.estimate_source, w.last_estimated_at,
		w.created_at, w.updated_at`

// sqliteWorkItemStore holds the SQL shared by every work-item table.
type sqliteWorkItemStore struct {
	db    db.DBTX
	table string
	kind  domain.ItemKind
}

// SQLiteIssueRepo implements WorkItemRepo over the issues table.
type SQLiteIssueRepo struct {
	sqliteWorkItemStore
}

func NewSQLiteIssueRepo(db db.DBTX) *SQLiteIssueRepo {
	return &SQLiteIssueRepo{sqliteWorkItemStore{db: db, table: "issues", kind: domain.KindIssue}}
}

// SQLiteActionItemRepo implements WorkItemRepo over the action_items table.
type SQLiteActionItemRepo struct {
	sqliteWorkItemStore
}

func NewSQLiteActionItemRepo(db db.DBTX) *SQLiteActionItemRepo {
	return &SQLiteActionItemRepo{sqliteWorkItemStore{db: db, table: "action_items", kind: domain.KindActionItem}}
}

var (
	_ WorkItemRepo = (*SQLiteIssueRepo)(nil)
	_ WorkItemRepo = (*SQLiteActionItemRepo)(nil)
)

// NewWorkItemRepo returns the repository for kind bound to conn. Services use
// it to build tx-scoped repositories inside a UnitOfWork.
func NewWorkItemRepo(conn db.DBTX, kind domain.ItemKind) (WorkItemRepo, error) {
	switch kind {
	case domain.KindIssue:
		return NewSQLiteIssueRepo(conn), nil
	case domain.KindActionItem:
		return NewSQLiteActionItemRepo(conn), nil
	default:
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}
}

// WorkItemStores selects a WorkItemRepo by kind.
type WorkItemStores struct {
	Issues      WorkItemRepo
	ActionItems WorkItemRepo
}

// NewWorkItemStores builds both repositories over the same connection.
func NewWorkItemStores(conn db.DBTX) WorkItemStores {
	return WorkItemStores{
		Issues:      NewSQLiteIssueRepo(conn),
		ActionItems: NewSQLiteActionItemRepo(conn),
	}
}

func (s WorkItemStores) For(kind domain.ItemKind) (WorkItemRepo, error) {
	switch kind {
	case domain.KindIssue:
		if s.Issues != nil {
			return s.Issues, nil
		}
	case domain.KindActionItem:
		if s.ActionItems != nil {
			return s.ActionItems, nil
		}
	default:
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}
	return nil, fmt.Errorf("no store configured for %s", kind)
}

func (r *sqliteWorkItemStore) Kind() domain.ItemKind {
	return r.kind
}

func (r *sqliteWorkItemStore) label() string {
	return strings.ReplaceAll(string(r.kind), "-", " ")
}

func (r *sqliteWorkItemStore) Create(ctx context.Context, w *domain.WorkItem) error {
	if w.ParentID != nil {
		if err := r.checkParent(ctx, w.ProjectID, *w.ParentID, 0); err != nil {
			return err
		}
	}
	if w.Status == "" {
		w.Status = domain.StatusTodo
	}
	now := nowUTC()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	if w.UpdatedAt.IsZero() {
		w.UpdatedAt = w.CreatedAt
	}
	w.Kind = r.kind

	query := `INSERT INTO ` + r.table + ` (project_id, parent_id, title, description,
		status, assignee, is_epic,
		estimated_hours, rolled_up_hours, estimate_version,
		estimate_confidence, estimate_source, last_estimated_at,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		w.ProjectID,
		nullableInt64(w.ParentID),
		w.Title,
		w.Description,
		string(w.Status),
		w.Assignee,
		boolToInt(w.IsEpic),
		w.EstimatedHours,
		w.RolledUpHours,
		w.EstimateVersion,
		string(w.EstimateConfidence),
		string(w.EstimateSource),
		nullableTimeToString(w.LastEstimatedAt),
		formatTime(w.CreatedAt),
		formatTime(w.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting %s: %w", r.label(), err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading %s id: %w", r.label(), err)
	}
	w.ID = id
	return nil
}

// checkParent verifies parentID exists in the same project and, for an
// existing item, is not the item itself or one of its descendants.
func (r *sqliteWorkItemStore) checkParent(ctx context.Context, projectID, parentID, selfID int64) error {
	var parentProject int64
	err := r.db.QueryRowContext(ctx, `SELECT project_id FROM `+r.table+` WHERE id = ?`, parentID).Scan(&parentProject)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: parent %s %d does not exist", ErrInvalidParent, r.label(), parentID)
	}
	if err != nil {
		return fmt.Errorf("loading parent %s: %w", r.label(), err)
	}
	if parentProject != projectID {
		return fmt.Errorf("%w: parent %d belongs to project %d, not %d", ErrInvalidParent, parentID, parentProject, projectID)
	}
	if selfID == 0 {
		return nil
	}
	if parentID == selfID {
		return fmt.Errorf("%w: %s %d cannot be its own parent", ErrInvalidParent, r.label(), selfID)
	}
	descendants, err := r.ListDescendants(ctx, selfID)
	if err != nil {
		return err
	}
	for _, d := range descendants {
		if d.ID == parentID {
			return fmt.Errorf("%w: %d is a descendant of %d", ErrInvalidParent, parentID, selfID)
		}
	}
	return nil
}

func (r *sqliteWorkItemStore) GetByID(ctx context.Context, id int64) (*domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM ` + r.table + ` w WHERE w.id = ?`
	w, err := r.scanWorkItem(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %d: %w", r.label(), id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", r.label(), err)
	}
	return w, nil
}

func (r *sqliteWorkItemStore) ListByProject(ctx context.Context, projectID int64) ([]*domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM ` + r.table + ` w WHERE w.project_id = ? ORDER BY w.id`
	return r.queryWorkItems(ctx, "listing by project", query, projectID)
}

func (r *sqliteWorkItemStore) ListChildren(ctx context.Context, parentID int64) ([]*domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM ` + r.table + ` w WHERE w.parent_id = ? ORDER BY w.id`
	return r.queryWorkItems(ctx, "listing children", query, parentID)
}

func (r *sqliteWorkItemStore) ListDescendants(ctx context.Context, rootID int64) ([]domain.DescendantItem, error) {
	query := `WITH RECURSIVE tree(id, depth) AS (
			SELECT id, 1 FROM ` + r.table + ` WHERE parent_id = ?
			UNION ALL
			SELECT c.id, t.depth + 1
			FROM ` + r.table + ` c
			JOIN tree t ON c.parent_id = t.id
			WHERE t.depth < ?
		)
		SELECT ` + workItemColumns + `, tree.depth
		FROM tree
		JOIN ` + r.table + ` w ON w.id = tree.id
		ORDER BY tree.depth, w.id`
	rows, err := r.db.QueryContext(ctx, query, rootID, maxHierarchyDepth)
	if err != nil {
		return nil, fmt.Errorf("listing %s descendants: %w", r.label(), err)
	}
	defer rows.Close()

	var out []domain.DescendantItem
	for rows.Next() {
		var depth int
		w, err := r.scanWorkItem(rows, &depth)
		if err != nil {
			return nil, fmt.Errorf("scanning %s descendant: %w", r.label(), err)
		}
		out = append(out, domain.DescendantItem{WorkItem: *w, Depth: depth})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s descendants: %w", r.label(), err)
	}
	return out, nil
}

func (r *sqliteWorkItemStore) ListAncestors(ctx context.Context, id int64) ([]*domain.WorkItem, error) {
	query := `WITH RECURSIVE up(id, parent_id, depth) AS (
			SELECT id, parent_id, 0 FROM ` + r.table + ` WHERE id = ?
			UNION ALL
			SELECT p.id, p.parent_id, up.depth + 1
			FROM ` + r.table + ` p
			JOIN up ON p.id = up.parent_id
			WHERE up.depth < ?
		)
		SELECT ` + workItemColumns + `
		FROM up
		JOIN ` + r.table + ` w ON w.id = up.id
		WHERE up.depth > 0
		ORDER BY up.depth`
	return r.queryWorkItems(ctx, "listing ancestors", query, id, maxHierarchyDepth)
}

func (r *sqliteWorkItemStore) ListParentIDs(ctx context.Context, projectID int64) ([]int64, error) {
	query := `SELECT DISTINCT parent_id FROM ` + r.table + `
		WHERE project_id = ? AND parent_id IS NOT NULL
		ORDER BY parent_id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing %s parents: %w", r.label(), err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning %s parent id: %w", r.label(), err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s parents: %w", r.label(), err)
	}
	return ids, nil
}

func (r *sqliteWorkItemStore) Update(ctx context.Context, w *domain.WorkItem) error {
	if w.ParentID != nil {
		if err := r.checkParent(ctx, w.ProjectID, *w.ParentID, w.ID); err != nil {
			return err
		}
	}
	w.UpdatedAt = nowUTC()

	query := `UPDATE ` + r.table + ` SET parent_id = ?, title = ?, description = ?,
		status = ?, assignee = ?, is_epic = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableInt64(w.ParentID),
		w.Title,
		w.Description,
		string(w.Status),
		w.Assignee,
		boolToInt(w.IsEpic),
		formatTime(w.UpdatedAt),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating %s: %w", r.label(), err)
	}
	return r.requireAffected(res, w.ID)
}

func (r *sqliteWorkItemStore) UpdateEstimate(ctx context.Context, w *domain.WorkItem, expectedVersion int) error {
	query := `UPDATE ` + r.table + ` SET estimated_hours = ?, estimate_version = ?,
		estimate_confidence = ?, estimate_source = ?, last_estimated_at = ?, updated_at = ?
		WHERE id = ? AND estimate_version = ?`
	res, err := r.db.ExecContext(ctx, query,
		w.EstimatedHours,
		w.EstimateVersion,
		string(w.EstimateConfidence),
		string(w.EstimateSource),
		nullableTimeToString(w.LastEstimatedAt),
		formatTime(w.UpdatedAt),
		w.ID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("updating %s estimate: %w", r.label(), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, w.ID); err != nil {
		return err
	}
	return fmt.Errorf("%s %d at version %d: %w", r.label(), w.ID, expectedVersion, ErrVersionConflict)
}

func (r *sqliteWorkItemStore) UpdateRolledUpHours(ctx context.Context, id int64, hours float64) error {
	query := `UPDATE ` + r.table + ` SET rolled_up_hours = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, hours, formatTime(nowUTC()), id)
	if err != nil {
		return fmt.Errorf("updating %s rollup: %w", r.label(), err)
	}
	return r.requireAffected(res, id)
}

func (r *sqliteWorkItemStore) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+r.table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", r.label(), err)
	}
	return r.requireAffected(res, id)
}

func (r *sqliteWorkItemStore) requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", r.label(), id, ErrNotFound)
	}
	return nil
}

func (r *sqliteWorkItemStore) queryWorkItems(ctx context.Context, op, query string, args ...any) ([]*domain.WorkItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, r.label(), err)
	}
	defer rows.Close()

	var items []*domain.WorkItem
	for rows.Next() {
		w, err := r.scanWorkItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", r.label(), err)
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", r.label(), err)
	}
	return items, nil
}

// scanWorkItem reads workItemColumns followed by any extra destinations.
func (r *sqliteWorkItemStore) scanWorkItem(row rowScanner, extra ...any) (*domain.WorkItem, error) {
	var (
		w                          domain.WorkItem
		parentID                   sql.NullInt64
		status, confidence, source string
		isEpic                     int
		lastEstimatedAt            sql.NullString
		createdAt, updatedAt       string
	)
	dest := []any{
		&w.ID, &w.ProjectID, &parentID, &w.Title, &w.Description,
		&status, &w.Assignee, &isEpic,
		&w.EstimatedHours, &w.RolledUpHours, &w.EstimateVersion,
		&confidence, &source, &lastEstimatedAt,
		&createdAt, &updatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	w.Kind = r.kind
	if parentID.Valid {
		p := parentID.Int64
		w.ParentID = &p
	}
	w.Status = domain.WorkItemStatus(status)
	w.IsEpic = intToBool(isEpic)
	w.EstimateConfidence = domain.Confidence(confidence)
	w.EstimateSource = domain.EstimateSource(source)
	w.LastEstimatedAt = parseNullableTime(lastEstimatedAt)

	var err error
	if w.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if w.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &w, nil
}
