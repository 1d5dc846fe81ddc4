package repository

import (
	"context"
	"fmt"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/db"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
)

// SQLiteDependencyRepo implements DependencyRepo. Edges are typed by item
// kind; both endpoints live in that kind's table.
type SQLiteDependencyRepo struct {
	db db.DBTX
}

func NewSQLiteDependencyRepo(db db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{db: db}
}

func (r *SQLiteDependencyRepo) Create(ctx context.Context, d *domain.Dependency) error {
	table, err := tableFor(d.ItemKind)
	if err != nil {
		return err
	}
	if d.Type == "" {
		d.Type = domain.DependencyFinishToStart
	}

	var found int
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+table+` WHERE project_id = ? AND id IN (?, ?)`,
		d.ProjectID, d.PrerequisiteID, d.DependentID,
	).Scan(&found)
	if err != nil {
		return fmt.Errorf("checking dependency endpoints: %w", err)
	}
	if found != 2 {
		return fmt.Errorf("dependency %d -> %d in project %d: %w", d.PrerequisiteID, d.DependentID, d.ProjectID, ErrNotFound)
	}

	query := `INSERT INTO dependencies (project_id, item_kind, prerequisite_id, dependent_id, dependency_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		d.ProjectID, string(d.ItemKind), d.PrerequisiteID, d.DependentID, string(d.Type), formatTime(nowUTC()))
	if err != nil {
		return fmt.Errorf("inserting dependency: %w", err)
	}
	if d.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading dependency id: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) Delete(ctx context.Context, kind domain.ItemKind, prerequisiteID, dependentID int64) error {
	query := `DELETE FROM dependencies WHERE item_kind = ? AND prerequisite_id = ? AND dependent_id = ?`
	if _, err := r.db.ExecContext(ctx, query, string(kind), prerequisiteID, dependentID); err != nil {
		return fmt.Errorf("deleting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) ListPrerequisites(ctx context.Context, kind domain.ItemKind, dependentID int64) ([]domain.Dependency, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := `SELECT d.id, d.project_id, d.item_kind, d.prerequisite_id, d.dependent_id, d.dependency_type,
			p.title, p.status, p.estimated_hours
		FROM dependencies d
		JOIN ` + table + ` p ON p.id = d.prerequisite_id
		WHERE d.item_kind = ? AND d.dependent_id = ?
		ORDER BY d.prerequisite_id`
	rows, err := r.db.QueryContext(ctx, query, string(kind), dependentID)
	if err != nil {
		return nil, fmt.Errorf("listing prerequisites: %w", err)
	}
	defer rows.Close()

	var deps []domain.Dependency
	for rows.Next() {
		var (
			d                 domain.Dependency
			itemKind, depType string
			prereqStatus      string
		)
		if err := rows.Scan(&d.ID, &d.ProjectID, &itemKind, &d.PrerequisiteID, &d.DependentID, &depType,
			&d.PrerequisiteTitle, &prereqStatus, &d.PrerequisiteHours); err != nil {
			return nil, fmt.Errorf("scanning dependency: %w", err)
		}
		d.ItemKind = domain.ItemKind(itemKind)
		d.Type = domain.DependencyType(depType)
		d.PrerequisiteStatus = domain.WorkItemStatus(prereqStatus)
		deps = append(deps, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return deps, nil
}
