package notes

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/readlogapp/readlog/pkg/errcodes"
	"github.com/readlogapp/readlog/pkg/models"
	"github.com/readlogapp/readlog/pkg/pagination"
	"github.com/uptrace/bun"
)

type RetrieveNoteOptions struct {
	ID *int
}

type ListNotesOptions struct {
	Pagination *pagination.Params
	BookID     *int

	includeTotal bool
}

type UpdateNoteOptions struct {
	// Columns lists exactly which fields to write; a named column backed by a
	// nil pointer is written as SQL NULL.
	Columns []string
}

type Page struct {
	Notes []*models.Note `json:"notes"`
	pagination.Metadata
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateNote(ctx context.Context, note *models.Note) error {
	if strings.TrimSpace(note.Note) == "" {
		return errcodes.ValidationError(`"note" is required`)
	}

	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}

	_, err := svc.db.
		NewInsert().
		Model(note).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrieveNote(ctx context.Context, opts RetrieveNoteOptions) (*models.Note, error) {
	note := &models.Note{}

	q := svc.db.
		NewSelect().
		Model(note)

	if opts.ID != nil {
		q = q.Where("n.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Note")
		}
		return nil, errors.WithStack(err)
	}

	return note, nil
}

func (svc *Service) ListNotes(ctx context.Context, opts ListNotesOptions) ([]*models.Note, error) {
	notes, _, err := svc.listNotes(ctx, opts)
	return notes, errors.WithStack(err)
}

func (svc *Service) ListNotesPage(ctx context.Context, opts ListNotesOptions) (*Page, error) {
	if opts.Pagination == nil {
		opts.Pagination = &pagination.Params{Page: 1, PageSize: 20}
	}
	opts.includeTotal = true

	notes, total, err := svc.listNotes(ctx, opts)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Page{
		Notes:    notes,
		Metadata: pagination.NewMetadata(total, *opts.Pagination),
	}, nil
}

func (svc *Service) listNotes(ctx context.Context, opts ListNotesOptions) ([]*models.Note, int, error) {
	notes := []*models.Note{}
	var total int
	var err error

	// Paged notes come before unpaged ones, then page order, then insertion
	// order as the tie-break.
	q := svc.db.
		NewSelect().
		Model(&notes).
		OrderExpr("n.page IS NULL ASC, n.page ASC, n.createdAt ASC")

	if opts.Pagination != nil {
		q = q.Limit(opts.Pagination.Limit()).Offset(opts.Pagination.Offset())
	}
	if opts.BookID != nil {
		q = q.Where("n.bookId = ?", *opts.BookID)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return notes, total, nil
}

func (svc *Service) UpdateNote(ctx context.Context, note *models.Note, opts UpdateNoteOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}
	if strings.TrimSpace(note.Note) == "" {
		return errcodes.ValidationError(`"note" is required`)
	}

	res, err := svc.db.
		NewUpdate().
		Model(note).
		Column(opts.Columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if affected == 0 {
		return errcodes.NotFound("Note")
	}

	return nil
}

func (svc *Service) DeleteNote(ctx context.Context, id int) error {
	res, err := svc.db.
		NewDelete().
		Model((*models.Note)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if affected == 0 {
		return errcodes.NotFound("Note")
	}

	return nil
}
