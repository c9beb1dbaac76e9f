package books

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

type RetrieveBookOptions struct {
	ID   *int
	ISBN *string
}

type ListBooksOptions struct {
	Pagination *pagination.Params
	Status     *string
	Search     *string

	includeTotal bool
}

type UpdateBookOptions struct {
	// Columns lists exactly which fields to write. A column named here whose
	// model field is a nil pointer is written as SQL NULL; a column not named
	// is left untouched. This mirrors the old client contract where an
	// undefined patch value was coerced to null before binding.
	Columns []string
}

type Page struct {
	Books []*models.Book `json:"books"`
	pagination.Metadata
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateBook(ctx context.Context, book *models.Book) error {
	if strings.TrimSpace(book.Title) == "" {
		return errcodes.ValidationError(`"title" is required`)
	}

	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt

	if book.Status == "" {
		book.Status = models.StatusWantToRead
	}
	if book.TrackingType == "" {
		book.TrackingType = models.TrackingTypePages
	}
	if book.CollectionType == "" {
		book.CollectionType = models.CollectionTypeStandalone
	}

	_, err := svc.db.
		NewInsert().
		Model(book).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}

	q := svc.db.
		NewSelect().
		Model(book)

	if opts.ID != nil {
		q = q.Where("b.id = ?", *opts.ID)
	}
	if opts.ISBN != nil {
		q = q.Where("b.isbn = ?", *opts.ISBN)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

// ListBooks returns the full catalog ordered by title.
func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, error) {
	books, _, err := svc.listBooks(ctx, opts)
	return books, errors.WithStack(err)
}

// ListBooksPage returns one page plus the count metadata the list screens
// page through.
func (svc *Service) ListBooksPage(ctx context.Context, opts ListBooksOptions) (*Page, error) {
	if opts.Pagination == nil {
		opts.Pagination = &pagination.Params{Page: 1, PageSize: 20}
	}
	opts.includeTotal = true

	books, total, err := svc.listBooks(ctx, opts)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Page{
		Books:    books,
		Metadata: pagination.NewMetadata(total, *opts.Pagination),
	}, nil
}

func (svc *Service) listBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	books := []*models.Book{}
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&books).
		Order("b.title ASC")

	if opts.Pagination != nil {
		q = q.Limit(opts.Pagination.Limit()).Offset(opts.Pagination.Offset())
	}
	if opts.Status != nil {
		q = q.Where("b.status = ?", *opts.Status)
	}
	if opts.Search != nil && *opts.Search != "" {
		pattern := "%" + *opts.Search + "%"
		q = q.Where("(b.title LIKE ? OR b.author LIKE ?)", pattern, pattern)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return books, total, nil
}

func (svc *Service) UpdateBook(ctx context.Context, book *models.Book, opts UpdateBookOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	book.UpdatedAt = time.Now()
	columns := append(opts.Columns, "updatedAt")

	res, err := svc.db.
		NewUpdate().
		Model(book).
		Column(columns...).
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
		return errcodes.NotFound("Book")
	}

	return nil
}

// DeleteBook removes the book and everything hanging off it. Children are
// deleted first so no orphaned rows survive the parent. The three statements
// run without a wrapping transaction; on the single writer connection a
// failure mid-way leaves children gone but the book intact, which a retry
// cleans up.
func (svc *Service) DeleteBook(ctx context.Context, id int) error {
	if _, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &id}); err != nil {
		return errors.WithStack(err)
	}

	_, err := svc.db.
		NewDelete().
		Model((*models.Session)(nil)).
		Where("bookId = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	_, err = svc.db.
		NewDelete().
		Model((*models.Note)(nil)).
		Where("bookId = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	_, err = svc.db.
		NewDelete().
		Model((*models.Book)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}
