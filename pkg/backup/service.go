package backup

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/readlogapp/readlog/pkg/errcodes"
	"github.com/readlogapp/readlog/pkg/models"
	"github.com/uptrace/bun"
)

// FormatVersion tags exported documents. Import refuses anything else.
const FormatVersion = "2.0"

// sessionBatchSize bounds the number of rows per bulk INSERT during import.
const sessionBatchSize = 100

// Document is the full-dataset backup format.
type Document struct {
	Version    string            `json:"version"`
	ExportDate string            `json:"exportDate"`
	Books      []*models.Book    `json:"books"`
	Sessions   []*models.Session `json:"sessions"`
}

// Summary reports what an import actually wrote.
type Summary struct {
	Books           int `json:"books"`
	Sessions        int `json:"sessions"`
	SkippedSessions int `json:"skippedSessions"`
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// Export walks all books then all sessions into one document. Notes are not
// part of the backup format.
func (svc *Service) Export(ctx context.Context) (*Document, error) {
	doc := &Document{
		Version:    FormatVersion,
		ExportDate: time.Now().UTC().Format(time.RFC3339),
		Books:      []*models.Book{},
		Sessions:   []*models.Session{},
	}

	err := svc.db.
		NewSelect().
		Model(&doc.Books).
		Order("b.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	err = svc.db.
		NewSelect().
		Model(&doc.Sessions).
		Order("s.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return doc, nil
}

// Import restores a document in one transaction. Books are inserted fresh,
// dropping their old numeric ids; sessions are remapped through the
// old-id-to-new-id table as they go. A session pointing at a book that isn't
// in the document is skipped silently. Any failure rolls the whole import
// back; partial imports never happen.
func (svc *Service) Import(ctx context.Context, doc *Document) (*Summary, error) {
	if doc.Version != FormatVersion {
		return nil, errcodes.UnsupportedBackupVersion(doc.Version)
	}

	summary := &Summary{}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		idMap := make(map[int]int, len(doc.Books))

		for _, book := range doc.Books {
			oldID := book.ID

			inserted := *book
			inserted.ID = 0
			if inserted.CreatedAt.IsZero() {
				inserted.CreatedAt = time.Now()
			}
			inserted.UpdatedAt = time.Now()

			_, err := tx.
				NewInsert().
				Model(&inserted).
				Returning("*").
				Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}

			idMap[oldID] = inserted.ID
			summary.Books++
		}

		batch := make([]*models.Session, 0, sessionBatchSize)
		flush := func() error {
			if len(batch) == 0 {
				return nil
			}
			_, err := tx.
				NewInsert().
				Model(&batch).
				Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
			summary.Sessions += len(batch)
			batch = batch[:0]
			return nil
		}

		for _, session := range doc.Sessions {
			newID, ok := idMap[session.BookID]
			if !ok {
				summary.SkippedSessions++
				continue
			}

			inserted := *session
			inserted.ID = 0
			inserted.BookID = newID
			batch = append(batch, &inserted)

			if len(batch) == sessionBatchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}

		return flush()
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return summary, nil
}
