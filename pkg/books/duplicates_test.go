package books

import (
	"context"
	"testing"

	"github.com/readlogapp/readlog/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_FindPotentialDuplicates(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	author := "Frank Herbert"
	isbn := "9780441172719"
	dune := &models.Book{Title: "Dune", Author: &author, ISBN: &isbn}
	require.NoError(t, svc.CreateBook(ctx, dune))

	deluxe := &models.Book{Title: "Dune: Deluxe Edition", Author: &author}
	require.NoError(t, svc.CreateBook(ctx, deluxe))

	otherAuthor := "Brian Herbert"
	unrelated := &models.Book{Title: "Sandworms of Dune", Author: &otherAuthor}
	require.NoError(t, svc.CreateBook(ctx, unrelated))

	t.Run("matches exactly on isbn", func(t *testing.T) {
		matches, err := svc.FindPotentialDuplicates(ctx, "", "", "9780441172719")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, dune.ID, matches[0].Book.ID)
		assert.Equal(t, MatchTypeExact, matches[0].MatchType)
		assert.Equal(t, 100, matches[0].Similarity)
	})

	t.Run("matches title and author case-insensitively", func(t *testing.T) {
		matches, err := svc.FindPotentialDuplicates(ctx, "DUNE", "frank herbert", "")
		require.NoError(t, err)
		require.NotEmpty(t, matches)
		assert.Equal(t, dune.ID, matches[0].Book.ID)
		assert.Equal(t, MatchTypeExact, matches[0].MatchType)
	})

	t.Run("substring overlap is tagged similar", func(t *testing.T) {
		matches, err := svc.FindPotentialDuplicates(ctx, "Dune: Deluxe Edition", "Frank Herbert", "")
		require.NoError(t, err)

		byID := map[int]DuplicateMatch{}
		for _, m := range matches {
			byID[m.Book.ID] = m
		}

		require.Contains(t, byID, deluxe.ID)
		assert.Equal(t, MatchTypeExact, byID[deluxe.ID].MatchType)

		// "Dune" is contained in the candidate title, so the bidirectional
		// check picks it up even though the exact queries miss it.
		require.Contains(t, byID, dune.ID)
		assert.Equal(t, MatchTypeSimilar, byID[dune.ID].MatchType)
		assert.Equal(t, 80, byID[dune.ID].Similarity)
	})

	t.Run("exact beats similar when a book matches both", func(t *testing.T) {
		matches, err := svc.FindPotentialDuplicates(ctx, "Dune", "Frank Herbert", "9780441172719")
		require.NoError(t, err)

		for _, m := range matches {
			if m.Book.ID == dune.ID {
				assert.Equal(t, MatchTypeExact, m.MatchType)
				assert.Equal(t, 100, m.Similarity)
			}
		}
	})

	t.Run("returns nothing without identifying fields", func(t *testing.T) {
		matches, err := svc.FindPotentialDuplicates(ctx, "", "", "")
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}
