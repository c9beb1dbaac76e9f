package books

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/readlogapp/readlog/pkg/models"
)

const (
	MatchTypeExact   = "exact"
	MatchTypeSimilar = "similar"

	// similarScore is the fixed confidence attached to substring matches.
	// There is no edit-distance scoring for books; either the fields line up
	// exactly or they overlap enough to be worth showing the user.
	similarScore = 80
	exactScore   = 100
)

type DuplicateMatch struct {
	Book       *models.Book `json:"book"`
	MatchType  string       `json:"matchType"`
	Similarity int          `json:"similarity"`
}

// FindPotentialDuplicates looks for an already-catalogued copy of a candidate
// book via three independent queries merged by id: exact ISBN, exact
// case-insensitive title+author, and substring overlap on both fields. Exact
// matches win when a book shows up in more than one result set.
func (svc *Service) FindPotentialDuplicates(ctx context.Context, title, author, isbn string) ([]DuplicateMatch, error) {
	matches := []DuplicateMatch{}
	seen := map[int]bool{}

	add := func(found []*models.Book, matchType string, similarity int) {
		for _, book := range found {
			if seen[book.ID] {
				continue
			}
			seen[book.ID] = true
			matches = append(matches, DuplicateMatch{
				Book:       book,
				MatchType:  matchType,
				Similarity: similarity,
			})
		}
	}

	if isbn != "" {
		found := []*models.Book{}
		err := svc.db.
			NewSelect().
			Model(&found).
			Where("b.isbn = ?", isbn).
			Scan(ctx)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		add(found, MatchTypeExact, exactScore)
	}

	if title != "" && author != "" {
		found := []*models.Book{}
		err := svc.db.
			NewSelect().
			Model(&found).
			Where("LOWER(b.title) = ?", strings.ToLower(title)).
			Where("LOWER(b.author) = ?", strings.ToLower(author)).
			Scan(ctx)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		add(found, MatchTypeExact, exactScore)
	}

	if title != "" && author != "" {
		// Author substring plus a bidirectional title check: the stored title
		// containing the candidate counts the same as the candidate
		// containing the stored title ("Dune" vs "Dune: Deluxe Edition").
		found := []*models.Book{}
		err := svc.db.
			NewSelect().
			Model(&found).
			Where("b.author LIKE ?", "%"+author+"%").
			Where("(b.title LIKE ? OR ? LIKE '%' || b.title || '%')", "%"+title+"%", title).
			Scan(ctx)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		add(found, MatchTypeSimilar, similarScore)
	}

	return matches, nil
}
