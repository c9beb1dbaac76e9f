package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// operation is a single schema change. Operations that report bestEffort are
// individually isolated by the runner; everything else aborts the migration
// transaction on failure.
type operation interface {
	describe() string
	run(ctx context.Context, tx bun.Tx) error
	bestEffort() bool
}

// addColumn issues ALTER TABLE ... ADD COLUMN only when the column is absent,
// so re-running a migration against an already-migrated schema is a no-op
// rather than an error.
type addColumn struct {
	table      string
	column     string
	definition string
}

func (op addColumn) describe() string {
	return fmt.Sprintf("add-column %s.%s", op.table, op.column)
}

func (op addColumn) bestEffort() bool { return false }

func (op addColumn) run(ctx context.Context, tx bun.Tx) error {
	exists, err := columnExists(ctx, tx, op.table, op.column)
	if err != nil {
		return errors.WithStack(err)
	}
	if exists {
		return nil
	}

	_, err = tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", op.table, op.column, op.definition))
	return errors.WithStack(err)
}

// dropTable drops unconditionally. It is best-effort so that one already
// missing legacy table doesn't abort the version bump.
type dropTable struct {
	table string
}

func (op dropTable) describe() string {
	return "drop-table " + op.table
}

func (op dropTable) bestEffort() bool { return true }

func (op dropTable) run(ctx context.Context, tx bun.Tx) error {
	_, err := tx.ExecContext(ctx, "DROP TABLE "+op.table)
	return errors.WithStack(err)
}

// columnExists introspects the table's metadata. Used by addColumn's guard
// and by tests asserting idempotence.
func columnExists(ctx context.Context, db bun.IDB, table, column string) (bool, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, errors.WithStack(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			typ       string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &pk); err != nil {
			return false, errors.WithStack(err)
		}
		if name == column {
			return true, nil
		}
	}

	return false, errors.WithStack(rows.Err())
}
