package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
)

// maxHierarchyDepth bounds recursive walks so corrupt parent links cannot
// loop forever.
const maxHierarchyDepth = 64

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// tableFor maps an item kind to its table.
func tableFor(kind domain.ItemKind) (string, error) {
	switch kind {
	case domain.KindIssue:
		return "issues", nil
	case domain.KindActionItem:
		return "action_items", nil
	default:
		return "", fmt.Errorf("unknown item kind %q", kind)
	}
}

// parseNullableTime parses a sql.NullString into a *time.Time.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString returns nil (SQL NULL) for a nil pointer.
func nullableTimeToString(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func nullableInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// nowUTC returns the current time truncated to the stored precision.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// marshalJSONColumn encodes v for a TEXT column, mapping nil slices to "[]".
func marshalJSONColumn(v any, empty string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(data) == "null" {
		return empty, nil
	}
	return string(data), nil
}
