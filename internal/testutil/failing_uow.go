package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/db"
)

// FailingUoW runs real transactions but makes the Nth matching ExecContext
// fail with Err. When Match is set only statements containing it are
// counted, e.g. "INSERT INTO estimate_history". Reads are never counted.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int32
	Match  string
	Err    error

	execs atomic.Int32
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failingTx{DBTX: tx, uow: u}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

// Execs reports how many matching statements were attempted.
func (u *FailingUoW) Execs() int32 {
	return u.execs.Load()
}

type failingTx struct {
	db.DBTX
	uow *FailingUoW
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.Match == "" || strings.Contains(query, f.uow.Match) {
		if n := f.uow.execs.Add(1); n == f.uow.FailOn {
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
