package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// WorkItemTables lists the tables that share the work-item column layout.
var WorkItemTables = []string{"issues", "action_items"}

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is re-run on every start; the column
			// already exists on current databases.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = buildMigrations()

func buildMigrations() []string {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_key ON projects(key) WHERE key != ''`,
	}

	for _, table := range WorkItemTables {
		stmts = append(stmts, workItemTableStatements(table)...)
	}

	stmts = append(stmts,
		`CREATE TABLE IF NOT EXISTS estimate_history (
			id TEXT PRIMARY KEY,
			item_kind TEXT NOT NULL CHECK(item_kind IN ('issue', 'action-item')),
			item_id INTEGER NOT NULL,
			version INTEGER NOT NULL CHECK(version >= 1),
			estimate_hours REAL NOT NULL CHECK(estimate_hours >= 0),
			confidence TEXT NOT NULL CHECK(confidence IN ('low', 'medium', 'high')),
			breakdown TEXT NOT NULL DEFAULT '[]',
			reasoning TEXT NOT NULL DEFAULT '',
			assumptions TEXT NOT NULL DEFAULT '[]',
			risks TEXT NOT NULL DEFAULT '[]',
			source TEXT NOT NULL,
			created_by TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			UNIQUE(item_kind, item_id, version)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_estimate_history_item ON estimate_history(item_kind, item_id)`,

		`CREATE TABLE IF NOT EXISTS dependencies (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			item_kind TEXT NOT NULL CHECK(item_kind IN ('issue', 'action-item')),
			prerequisite_id INTEGER NOT NULL,
			dependent_id INTEGER NOT NULL,
			dependency_type TEXT NOT NULL DEFAULT 'finish_to_start',
			created_at TEXT NOT NULL,
			UNIQUE(item_kind, prerequisite_id, dependent_id),
			CHECK(prerequisite_id != dependent_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_dependencies_dependent ON dependencies(item_kind, dependent_id)`,

		`CREATE TABLE IF NOT EXISTS ai_usage (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL DEFAULT '',
			project_id INTEGER,
			feature TEXT NOT NULL,
			prompt_tokens INTEGER NOT NULL DEFAULT 0,
			completion_tokens INTEGER NOT NULL DEFAULT 0,
			total_tokens INTEGER NOT NULL DEFAULT 0,
			cost_amount REAL NOT NULL DEFAULT 0,
			model TEXT NOT NULL DEFAULT '',
			metadata TEXT NOT NULL DEFAULT '{}',
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ai_usage_created ON ai_usage(created_at)`,
	)
	return stmts
}

// workItemTableStatements returns the DDL for one work-item table. The effort
// columns are also added with ALTER TABLE so databases created before effort
// tracking pick them up.
func workItemTableStatements(table string) []string {
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %[1]s (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			parent_id INTEGER REFERENCES %[1]s(id) ON DELETE SET NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'todo'
				CHECK(status IN ('todo', 'in_progress', 'blocked', 'review', 'done', 'closed', 'cancelled')),
			assignee TEXT NOT NULL DEFAULT '',
			is_epic INTEGER NOT NULL DEFAULT 0,
			estimated_hours REAL NOT NULL DEFAULT 0,
			rolled_up_hours REAL NOT NULL DEFAULT 0,
			estimate_version INTEGER NOT NULL DEFAULT 0,
			estimate_confidence TEXT NOT NULL DEFAULT '',
			estimate_source TEXT NOT NULL DEFAULT '',
			last_estimated_at TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%[1]s_project ON %[1]s(project_id)`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%[1]s_parent ON %[1]s(parent_id)`, table),
	}

	effortColumns := []string{
		"is_epic INTEGER NOT NULL DEFAULT 0",
		"estimated_hours REAL NOT NULL DEFAULT 0",
		"rolled_up_hours REAL NOT NULL DEFAULT 0",
		"estimate_version INTEGER NOT NULL DEFAULT 0",
		"estimate_confidence TEXT NOT NULL DEFAULT ''",
		"estimate_source TEXT NOT NULL DEFAULT ''",
		"last_estimated_at TEXT",
	}
	for _, col := range effortColumns {
		stmts = append(stmts, fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s`, table, col))
	}
	return stmts
}
