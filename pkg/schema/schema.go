// Package schema owns the base DDL for the three tables every install starts
// from. Columns added after the first release live in pkg/migrations, never
// here, so a fresh database and an upgraded one converge on the same shape.
package schema

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

const booksTable = `
	CREATE TABLE IF NOT EXISTS books (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		author TEXT,
		isbn TEXT,
		totalPages INTEGER,
		coverUrl TEXT,
		coverPath TEXT,
		status TEXT NOT NULL DEFAULT 'Want to Read',
		currentPage INTEGER NOT NULL DEFAULT 0,
		rating INTEGER,
		format TEXT,
		language TEXT,
		publisher TEXT,
		publicationYear INTEGER,
		tags TEXT,
		seriesName TEXT,
		seriesOrder INTEGER,
		collectionType TEXT NOT NULL DEFAULT 'standalone',
		trackingType TEXT NOT NULL DEFAULT 'pages',
		createdAt TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)
`

const sessionsTable = `
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		bookId INTEGER NOT NULL REFERENCES books (id),
		bookTitle TEXT NOT NULL,
		startTime TEXT NOT NULL,
		endTime TEXT,
		startPage INTEGER DEFAULT 0,
		endPage INTEGER,
		duration INTEGER,
		readingNumber INTEGER DEFAULT 1
	)
`

const readingNotesTable = `
	CREATE TABLE IF NOT EXISTS reading_notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		bookId INTEGER NOT NULL REFERENCES books (id) ON DELETE CASCADE,
		note TEXT NOT NULL,
		page INTEGER,
		createdAt TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)
`

// EnsureBaseTables creates the base tables when absent. It runs before the
// migration runner on every startup.
func EnsureBaseTables(ctx context.Context, db *bun.DB) error {
	for _, ddl := range []string{booksTable, sessionsTable, readingNotesTable} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
