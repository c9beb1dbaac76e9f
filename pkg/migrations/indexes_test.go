package migrations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureIndexesOnMigratedSchema(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	report := BringUpToDate(ctx, db)
	require.True(t, report.OK())

	EnsureIndexes(ctx, db, report)
	assert.Len(t, report.Indexes, len(indexes))
	assert.Empty(t, report.IndexFailures())

	// Second pass is a no-op thanks to IF NOT EXISTS.
	EnsureIndexes(ctx, db, report)
	assert.Empty(t, report.IndexFailures())
}

func TestEnsureIndexesToleratesMissingColumns(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()

	// Migrations never ran, so readCount doesn't exist. That one attempt
	// fails; every other index is still created.
	report := NewReport(CurrentVersion)
	EnsureIndexes(ctx, db, report)

	failures := report.IndexFailures()
	require.Len(t, failures, 1)
	assert.Equal(t, "ix_books_readCount", failures[0].Name)

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = 'ix_sessions_bookId'").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
