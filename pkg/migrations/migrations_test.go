package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/readlogapp/readlog/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	// Keep every caller on the one connection that owns the in-memory DB.
	sqldb.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqldb.Close() })

	db := bun.NewDB(sqldb, sqlitedialect.New())
	require.NoError(t, schema.EnsureBaseTables(context.Background(), db))
	return db
}

func tableColumns(t *testing.T, db *bun.DB, table string) []string {
	t.Helper()

	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	require.NoError(t, err)
	defer rows.Close()

	columns := []string{}
	for rows.Next() {
		var (
			cid       int
			name      string
			typ       string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &pk))
		columns = append(columns, name)
	}
	require.NoError(t, rows.Err())
	return columns
}

func storedVersion(t *testing.T, db *bun.DB) int {
	t.Helper()

	var version int
	require.NoError(t, db.QueryRow("PRAGMA user_version").Scan(&version))
	return version
}

func TestBringUpToDateAppliesAllVersions(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	report := BringUpToDate(ctx, db)
	require.True(t, report.OK())
	assert.Equal(t, 0, report.StoredVersion)
	assert.Equal(t, []int{2, 3, 4, 5, 6, 8, 9, 10, 12}, report.Applied)
	assert.Equal(t, CurrentVersion, storedVersion(t, db))

	books := tableColumns(t, db, "books")
	for _, column := range []string{"originalLanguage", "seriesCoverUrl", "totalInSeries", "totalVolumes", "volumeNumber", "totalChapters", "currentChapter", "readCount"} {
		assert.Contains(t, books, column)
	}

	sessionCols := tableColumns(t, db, "sessions")
	assert.Contains(t, sessionCols, "startChapter")
	assert.Contains(t, sessionCols, "endChapter")
}

func TestBringUpToDateIsIdempotent(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	first := BringUpToDate(ctx, db)
	require.True(t, first.OK())
	booksAfterFirst := tableColumns(t, db, "books")

	second := BringUpToDate(ctx, db)
	require.True(t, second.OK())
	assert.Equal(t, CurrentVersion, second.StoredVersion)
	assert.Empty(t, second.Applied)

	// Identical schema, no duplicate columns.
	assert.Equal(t, booksAfterFirst, tableColumns(t, db, "books"))
	assert.Equal(t, CurrentVersion, storedVersion(t, db))
}

func TestBringUpToDateFromPartialVersion(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	// A database that last ran a build with schema version 6.
	for _, op := range []operation{
		addColumn{"books", "originalLanguage", "TEXT"},
		addColumn{"books", "seriesCoverUrl", "TEXT"},
		addColumn{"books", "totalInSeries", "INTEGER"},
		addColumn{"books", "totalVolumes", "INTEGER"},
		addColumn{"books", "volumeNumber", "INTEGER"},
		addColumn{"books", "totalChapters", "INTEGER"},
		addColumn{"books", "currentChapter", "INTEGER DEFAULT 0"},
	} {
		require.NoError(t, runAtomic(ctx, db, func(ctx context.Context, tx bun.Tx) error {
			return op.run(ctx, tx)
		}))
	}
	_, err := db.Exec("PRAGMA user_version = 6")
	require.NoError(t, err)

	report := BringUpToDate(ctx, db)
	require.True(t, report.OK())
	assert.Equal(t, 6, report.StoredVersion)
	assert.Equal(t, []int{8, 9, 10, 12}, report.Applied)
	assert.Equal(t, CurrentVersion, storedVersion(t, db))
}

func TestAddColumnGuard(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	exists, err := columnExists(ctx, db, "books", "readCount")
	require.NoError(t, err)
	require.False(t, exists)

	op := addColumn{"books", "readCount", "INTEGER DEFAULT 0"}
	require.NoError(t, runAtomic(ctx, db, func(ctx context.Context, tx bun.Tx) error {
		return op.run(ctx, tx)
	}))

	exists, err = columnExists(ctx, db, "books", "readCount")
	require.NoError(t, err)
	require.True(t, exists)

	// Second run hits the guard and is a no-op.
	columnsBefore := tableColumns(t, db, "books")
	require.NoError(t, runAtomic(ctx, db, func(ctx context.Context, tx bun.Tx) error {
		return op.run(ctx, tx)
	}))
	assert.Equal(t, columnsBefore, tableColumns(t, db, "books"))

	// The declared default applies to existing rows.
	_, err = db.Exec("INSERT INTO books (title) VALUES ('Dune')")
	require.NoError(t, err)
	var readCount int
	require.NoError(t, db.QueryRow("SELECT readCount FROM books LIMIT 1").Scan(&readCount))
	assert.Equal(t, 0, readCount)
}

func TestDropTableIsBestEffort(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	// Only one of the two legacy tables exists.
	_, err := db.Exec("CREATE TABLE reading_goals (id INTEGER PRIMARY KEY)")
	require.NoError(t, err)

	report := BringUpToDate(ctx, db)
	require.True(t, report.OK())
	assert.Equal(t, CurrentVersion, storedVersion(t, db))

	// The missing tables were skipped individually, not fatally.
	skipped := []string{}
	for _, res := range report.Skipped {
		skipped = append(skipped, res.Name)
	}
	assert.Contains(t, skipped, "drop-table reading_streaks")
	assert.NotContains(t, skipped, "drop-table reading_goals")

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'reading_goals'").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestBringUpToDateFailsOpen(t *testing.T) {
	t.Parallel()

	// No base tables at all: the first ALTER fails, the transaction rolls
	// back, and the version stays put. No error escapes.
	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	defer sqldb.Close()
	db := bun.NewDB(sqldb, sqlitedialect.New())

	report := BringUpToDate(context.Background(), db)
	assert.False(t, report.OK())
	assert.Empty(t, report.Applied)
	assert.Equal(t, 0, storedVersion(t, db))
}
