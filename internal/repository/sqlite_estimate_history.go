package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/db"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
	"github.com/google/uuid"
)

const estimateHistoryColumns = `id, item_kind, item_id, version, estimate_hours, confidence,
		breakdown, reasoning, assumptions, risks, source, created_by, created_at`

// SQLiteEstimateHistoryRepo implements EstimateHistoryRepo. Rows are only
// ever inserted.
type SQLiteEstimateHistoryRepo struct {
	db db.DBTX
}

func NewSQLiteEstimateHistoryRepo(db db.DBTX) *SQLiteEstimateHistoryRepo {
	return &SQLiteEstimateHistoryRepo{db: db}
}

func (r *SQLiteEstimateHistoryRepo) Append(ctx context.Context, rec *domain.EstimateHistoryRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = nowUTC()
	}

	breakdown, err := marshalJSONColumn(rec.Breakdown, "[]")
	if err != nil {
		return fmt.Errorf("encoding breakdown: %w", err)
	}
	assumptions, err := marshalJSONColumn(rec.Assumptions, "[]")
	if err != nil {
		return fmt.Errorf("encoding assumptions: %w", err)
	}
	risks, err := marshalJSONColumn(rec.Risks, "[]")
	if err != nil {
		return fmt.Errorf("encoding risks: %w", err)
	}

	query := `INSERT INTO estimate_history (` + estimateHistoryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		string(rec.ItemKind),
		rec.ItemID,
		rec.Version,
		rec.EstimateHours,
		string(rec.Confidence),
		breakdown,
		rec.Reasoning,
		assumptions,
		risks,
		string(rec.Source),
		rec.CreatedBy,
		formatTime(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting estimate history: %w", err)
	}
	return nil
}

func (r *SQLiteEstimateHistoryRepo) ListByItem(ctx context.Context, kind domain.ItemKind, itemID int64) ([]*domain.EstimateHistoryRecord, error) {
	query := `SELECT ` + estimateHistoryColumns + ` FROM estimate_history
		WHERE item_kind = ? AND item_id = ?
		ORDER BY version`
	rows, err := r.db.QueryContext(ctx, query, string(kind), itemID)
	if err != nil {
		return nil, fmt.Errorf("listing estimate history: %w", err)
	}
	defer rows.Close()

	var out []*domain.EstimateHistoryRecord
	for rows.Next() {
		rec, err := scanEstimateHistory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating estimate history: %w", err)
	}
	return out, nil
}

func scanEstimateHistory(row rowScanner) (*domain.EstimateHistoryRecord, error) {
	var (
		rec                           domain.EstimateHistoryRecord
		kind, confidence, source      string
		breakdown, assumptions, risks string
		createdAt                     string
	)
	err := row.Scan(
		&rec.ID, &kind, &rec.ItemID, &rec.Version, &rec.EstimateHours, &confidence,
		&breakdown, &rec.Reasoning, &assumptions, &risks, &source, &rec.CreatedBy, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning estimate history: %w", err)
	}

	rec.ItemKind = domain.ItemKind(kind)
	rec.Confidence = domain.Confidence(confidence)
	rec.Source = domain.EstimateSource(source)
	if err := json.Unmarshal([]byte(breakdown), &rec.Breakdown); err != nil {
		return nil, fmt.Errorf("decoding breakdown: %w", err)
	}
	if err := json.Unmarshal([]byte(assumptions), &rec.Assumptions); err != nil {
		return nil, fmt.Errorf("decoding assumptions: %w", err)
	}
	if err := json.Unmarshal([]byte(risks), &rec.Risks); err != nil {
		return nil, fmt.Errorf("decoding risks: %w", err)
	}
	if rec.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &rec, nil
}
