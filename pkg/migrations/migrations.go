// Package migrations brings an existing database up to the current schema
// version. The version source of truth is SQLite's user_version pragma, which
// shipped databases already carry, so the runner gates on that counter rather
// than a migrations ledger table.
//
// The runner is deliberately fail-open: a failed migration rolls back, is
// logged, and the app keeps booting against the old schema. Writes that need
// consistency (session saves, imports) are fail-closed and live with their
// services. runAtomic and runBestEffort make that split visible at the call
// site.
package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

// CurrentVersion is the schema version this build writes. Versions 1, 7 and
// 11 were no-ops folded into their neighbors; the sequence below is the full
// set that can still apply.
const CurrentVersion = 12

type migration struct {
	version int
	ops     []operation
}

// sequence must stay in ascending version order; the runner applies every
// entry whose version exceeds the stored user_version.
var sequence = []migration{
	{version: 2, ops: []operation{
		addColumn{"books", "originalLanguage", "TEXT"},
	}},
	{version: 3, ops: []operation{
		addColumn{"books", "seriesCoverUrl", "TEXT"},
	}},
	{version: 4, ops: []operation{
		addColumn{"books", "totalInSeries", "INTEGER"},
	}},
	{version: 5, ops: []operation{
		addColumn{"books", "totalVolumes", "INTEGER"},
		addColumn{"books", "volumeNumber", "INTEGER"},
	}},
	{version: 6, ops: []operation{
		addColumn{"books", "totalChapters", "INTEGER"},
		addColumn{"books", "currentChapter", "INTEGER DEFAULT 0"},
	}},
	{version: 8, ops: []operation{
		addColumn{"sessions", "startChapter", "INTEGER"},
		addColumn{"sessions", "endChapter", "INTEGER"},
	}},
	{version: 9, ops: []operation{
		addColumn{"books", "readCount", "INTEGER DEFAULT 0"},
	}},
	{version: 10, ops: []operation{
		// Goal/streak tracking moved out of the database entirely.
		dropTable{"reading_goals"},
		dropTable{"reading_streaks"},
	}},
	{version: 12, ops: []operation{
		// Stats are computed on demand now; the caches only ever went stale.
		dropTable{"statistics_cache"},
		dropTable{"book_metadata_cache"},
	}},
}

// BringUpToDate applies every pending migration inside one transaction and
// bumps user_version. It never returns an error: failures roll the whole
// transaction back, land in the report, and startup continues against the old
// schema.
func BringUpToDate(ctx context.Context, db *bun.DB) *Report {
	log := logger.FromContext(ctx)
	report := NewReport(CurrentVersion)

	stored, err := userVersion(ctx, db)
	if err != nil {
		report.Fail(errors.Wrap(err, "reading user_version"))
		log.Err(err).Error("migrations: could not read schema version")
		return report
	}
	report.StoredVersion = stored

	if stored >= CurrentVersion {
		return report
	}

	err = runAtomic(ctx, db, func(ctx context.Context, tx bun.Tx) error {
		for _, m := range sequence {
			if m.version <= stored {
				continue
			}
			for _, op := range m.ops {
				if err := op.run(ctx, tx); err != nil {
					if op.bestEffort() {
						// Most commonly "no such table" on databases that
						// never had the legacy table in the first place.
						report.Skip(op.describe(), err)
						log.Warn("migrations: best-effort step skipped", logger.Data{
							"version": m.version,
							"step":    op.describe(),
							"error":   err.Error(),
						})
						continue
					}
					return errors.Wrapf(err, "version %d: %s", m.version, op.describe())
				}
			}
			report.Applied = append(report.Applied, m.version)
		}

		// PRAGMA doesn't take bound parameters.
		_, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", CurrentVersion))
		return errors.WithStack(err)
	})
	if err != nil {
		report.Applied = nil
		report.Fail(err)
		log.Err(err).Error("migrations: rolled back, schema stays at stored version", logger.Data{
			"stored_version": stored,
			"target_version": CurrentVersion,
		})
	}

	return report
}

// StoredVersion reports the database's schema version without changing it.
func StoredVersion(ctx context.Context, db *bun.DB) (int, error) {
	return userVersion(ctx, db)
}

// userVersion reads the schema version counter the engine persists in the
// database header.
func userVersion(ctx context.Context, db *bun.DB) (int, error) {
	var version int
	err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return version, nil
}

// runAtomic runs fn in one transaction: any error rolls the whole unit back
// and is returned. The session and import write paths share this policy.
func runAtomic(ctx context.Context, db *bun.DB, fn func(ctx context.Context, tx bun.Tx) error) error {
	return db.RunInTx(ctx, &sql.TxOptions{}, fn)
}

// bestEffortStep is one independently attempted unit of work whose failure
// must not stop the steps after it.
type bestEffortStep struct {
	name string
	fn   func(ctx context.Context) error
}

// runBestEffort attempts every step, recording per-step outcomes instead of
// aborting. Callers decide what a failure means; nothing here is fatal.
func runBestEffort(ctx context.Context, steps []bestEffortStep) []StepResult {
	results := make([]StepResult, 0, len(steps))
	for _, step := range steps {
		results = append(results, StepResult{
			Name: step.name,
			Err:  step.fn(ctx),
		})
	}
	return results
}
