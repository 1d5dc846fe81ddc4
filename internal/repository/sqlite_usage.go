package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/db"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
	"github.com/google/uuid"
)

// SQLiteUsageRepo stores AI usage telemetry in ai_usage.
type SQLiteUsageRepo struct {
	db db.DBTX
}

func NewSQLiteUsageRepo(db db.DBTX) *SQLiteUsageRepo {
	return &SQLiteUsageRepo{db: db}
}

func (r *SQLiteUsageRepo) Record(ctx context.Context, rec domain.UsageRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = nowUTC()
	}
	if rec.TotalTokens == 0 {
		rec.TotalTokens = rec.PromptTokens + rec.CompletionTokens
	}
	meta, err := marshalJSONColumn(rec.Metadata, "{}")
	if err != nil {
		return fmt.Errorf("encoding usage metadata: %w", err)
	}

	var projectID any
	if rec.ProjectID != 0 {
		projectID = rec.ProjectID
	}

	query := `INSERT INTO ai_usage (id, user_id, project_id, feature, prompt_tokens, completion_tokens,
		total_tokens, cost_amount, model, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		rec.ID, rec.UserID, projectID, rec.Feature, rec.PromptTokens, rec.CompletionTokens,
		rec.TotalTokens, rec.CostAmount, rec.Model, meta, formatTime(rec.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting usage record: %w", err)
	}
	return nil
}

// ListByFeature returns the newest records for feature; limit <= 0 means all.
func (r *SQLiteUsageRepo) ListByFeature(ctx context.Context, feature string, limit int) ([]domain.UsageRecord, error) {
	query := `SELECT id, user_id, project_id, feature, prompt_tokens, completion_tokens,
			total_tokens, cost_amount, model, metadata, created_at
		FROM ai_usage WHERE feature = ?
		ORDER BY created_at DESC, id`
	args := []any{feature}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing usage: %w", err)
	}
	defer rows.Close()

	var out []domain.UsageRecord
	for rows.Next() {
		var (
			rec             domain.UsageRecord
			projectID       sql.NullInt64
			meta, createdAt string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &projectID, &rec.Feature, &rec.PromptTokens,
			&rec.CompletionTokens, &rec.TotalTokens, &rec.CostAmount, &rec.Model, &meta, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning usage: %w", err)
		}
		rec.ProjectID = projectID.Int64
		if err := json.Unmarshal([]byte(meta), &rec.Metadata); err != nil {
			return nil, fmt.Errorf("decoding usage metadata: %w", err)
		}
		if rec.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating usage: %w", err)
	}
	return out, nil
}
