package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

type indexSpec struct {
	name    string
	table   string
	columns string
}

// Secondary indices created after migrations. Some reference migration-added
// columns; if a migration was skipped or rolled back the attempt fails, is
// logged, and the remaining indices are still created.
var indexes = []indexSpec{
	{"ix_books_title", "books", "title"},
	{"ix_books_status", "books", "status"},
	{"ix_books_isbn", "books", "isbn"},
	{"ix_books_readCount", "books", "readCount"},
	{"ix_sessions_bookId", "sessions", "bookId"},
	{"ix_sessions_startTime", "sessions", "startTime"},
	{"ix_sessions_bookId_readingNumber", "sessions", "bookId, readingNumber"},
	{"ix_reading_notes_bookId", "reading_notes", "bookId"},
}

// EnsureIndexes attempts every secondary index, one statement each, never
// fatally. Results are appended to the report.
func EnsureIndexes(ctx context.Context, db *bun.DB, report *Report) {
	log := logger.FromContext(ctx)

	steps := make([]bestEffortStep, 0, len(indexes))
	for _, spec := range indexes {
		spec := spec
		steps = append(steps, bestEffortStep{
			name: spec.name,
			fn: func(ctx context.Context) error {
				_, err := db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS "+spec.name+" ON "+spec.table+" ("+spec.columns+")")
				return errors.WithStack(err)
			},
		})
	}

	results := runBestEffort(ctx, steps)
	for _, res := range results {
		if res.Err != nil {
			log.Warn("index creation skipped", logger.Data{
				"index": res.Name,
				"error": res.Err.Error(),
			})
		}
	}
	report.Indexes = append(report.Indexes, results...)
}
