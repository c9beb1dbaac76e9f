package backup

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/readlogapp/readlog/pkg/books"
	"github.com/readlogapp/readlog/pkg/errcodes"
	"github.com/readlogapp/readlog/pkg/migrations"
	"github.com/readlogapp/readlog/pkg/models"
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
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	ctx := context.Background()
	require.NoError(t, schema.EnsureBaseTables(ctx, db))
	report := migrations.BringUpToDate(ctx, db)
	require.True(t, report.OK())

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func createTestBook(t *testing.T, db *bun.DB, title string, isbn *string) *models.Book {
	t.Helper()
	book := &models.Book{Title: title, ISBN: isbn}
	require.NoError(t, books.NewService(db).CreateBook(context.Background(), book))
	return book
}

func strPtr(v string) *string { return &v }

func bookCount(t *testing.T, db *bun.DB) int {
	t.Helper()
	count, err := db.NewSelect().Model((*models.Book)(nil)).Count(context.Background())
	require.NoError(t, err)
	return count
}

func sessionCount(t *testing.T, db *bun.DB) int {
	t.Helper()
	count, err := db.NewSelect().Model((*models.Session)(nil)).Count(context.Background())
	require.NoError(t, err)
	return count
}

func TestService_Export(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	book := createTestBook(t, db, "Dune", strPtr("9780441172719"))

	session := &models.Session{
		BookID:        book.ID,
		BookTitle:     book.Title,
		StartTime:     "2026-08-01T10:00:00Z",
		ReadingNumber: 1,
	}
	_, err := db.NewInsert().Model(session).Exec(ctx)
	require.NoError(t, err)

	doc, err := svc.Export(ctx)
	require.NoError(t, err)

	assert.Equal(t, FormatVersion, doc.Version)
	assert.NotEmpty(t, doc.ExportDate)
	require.Len(t, doc.Books, 1)
	assert.Equal(t, "Dune", doc.Books[0].Title)
	require.Len(t, doc.Sessions, 1)
	assert.Equal(t, book.ID, doc.Sessions[0].BookID)
}

func TestService_Import(t *testing.T) {
	t.Parallel()

	t.Run("remaps session book ids through fresh inserts", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		svc := NewService(db)
		ctx := context.Background()

		// Occupy low ids so the old ids in the document can't survive.
		createTestBook(t, db, "Existing", nil)

		doc := &Document{
			Version: FormatVersion,
			Books: []*models.Book{
				{ID: 7, Title: "Dune", Status: models.StatusReading, TrackingType: models.TrackingTypePages, CollectionType: models.CollectionTypeStandalone},
			},
			Sessions: []*models.Session{
				{ID: 3, BookID: 7, BookTitle: "Dune", StartTime: "2026-08-01T10:00:00Z", ReadingNumber: 1},
			},
		}

		summary, err := svc.Import(ctx, doc)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Books)
		assert.Equal(t, 1, summary.Sessions)
		assert.Equal(t, 0, summary.SkippedSessions)

		sessions := []*models.Session{}
		require.NoError(t, db.NewSelect().Model(&sessions).Scan(ctx))
		require.Len(t, sessions, 1)
		assert.NotEqual(t, 7, sessions[0].BookID)

		linked := &models.Book{}
		require.NoError(t, db.NewSelect().Model(linked).Where("b.id = ?", sessions[0].BookID).Scan(ctx))
		assert.Equal(t, "Dune", linked.Title)
	})

	t.Run("silently skips sessions with unknown book ids", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		svc := NewService(db)
		ctx := context.Background()

		doc := &Document{
			Version: FormatVersion,
			Books: []*models.Book{
				{ID: 1, Title: "Dune", Status: models.StatusReading, TrackingType: models.TrackingTypePages, CollectionType: models.CollectionTypeStandalone},
			},
			Sessions: []*models.Session{
				{BookID: 1, BookTitle: "Dune", StartTime: "2026-08-01T10:00:00Z", ReadingNumber: 1},
				{BookID: 99, BookTitle: "Gone", StartTime: "2026-08-02T10:00:00Z", ReadingNumber: 1},
			},
		}

		summary, err := svc.Import(ctx, doc)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.Sessions)
		assert.Equal(t, 1, summary.SkippedSessions)
		assert.Equal(t, 1, sessionCount(t, db))
	})

	t.Run("rolls back completely when a later insert fails", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		svc := NewService(db)
		ctx := context.Background()

		createTestBook(t, db, "Existing", nil)

		// Force the second document book to collide.
		_, err := db.ExecContext(ctx, "CREATE UNIQUE INDEX ux_books_isbn ON books(isbn)")
		require.NoError(t, err)

		before := bookCount(t, db)

		doc := &Document{
			Version: FormatVersion,
			Books: []*models.Book{
				{ID: 1, Title: "First", ISBN: strPtr("123"), Status: models.StatusReading, TrackingType: models.TrackingTypePages, CollectionType: models.CollectionTypeStandalone},
				{ID: 2, Title: "Second", ISBN: strPtr("123"), Status: models.StatusReading, TrackingType: models.TrackingTypePages, CollectionType: models.CollectionTypeStandalone},
			},
		}

		_, err = svc.Import(ctx, doc)
		require.Error(t, err)
		assert.Equal(t, before, bookCount(t, db))
	})

	t.Run("rejects unknown format versions", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		svc := NewService(db)

		_, err := svc.Import(context.Background(), &Document{Version: "1.0"})
		assert.ErrorIs(t, err, errcodes.UnsupportedBackupVersion("1.0"))
	})
}

func TestWriteAndReadDocument(t *testing.T) {
	t.Parallel()

	dir, err := os.MkdirTemp("", "readlog-backup-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	doc := &Document{
		Version:    FormatVersion,
		ExportDate: "2026-08-30T12:00:00Z",
		Books:      []*models.Book{{ID: 1, Title: "Dune"}},
		Sessions:   []*models.Session{},
	}

	path, err := WriteDocument(doc, dir)
	require.NoError(t, err)

	loaded, err := ReadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Version, loaded.Version)
	require.Len(t, loaded.Books, 1)
	assert.Equal(t, "Dune", loaded.Books[0].Title)
}
