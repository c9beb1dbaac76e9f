package sessions

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/readlogapp/readlog/pkg/errcodes"
	"github.com/readlogapp/readlog/pkg/models"
	"github.com/readlogapp/readlog/pkg/pagination"
	"github.com/uptrace/bun"
)

type RetrieveSessionOptions struct {
	ID *int
}

type ListSessionsOptions struct {
	Pagination *pagination.Params
	BookID     *int

	includeTotal bool
}

type Page struct {
	Sessions []*models.Session `json:"sessions"`
	pagination.Metadata
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// SaveSession persists a session and keeps the parent book's progress in step
// with it. A session with no id is an insert: the parent book is read inside
// the same transaction, the session gets readingNumber = readCount+1, and if
// its end value strictly advances the book's stored progress the book row is
// updated too (Finished plus a readCount bump when the end value reaches the
// book's total, Reading otherwise). A session with an id is an edit: the row
// is replaced and the book is deliberately left alone. Any failure rolls the
// whole transaction back.
func (svc *Service) SaveSession(ctx context.Context, session *models.Session) error {
	if err := validateSession(session); err != nil {
		return err
	}

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if session.ID != 0 {
			return svc.updateSession(ctx, tx, session)
		}
		return svc.insertSession(ctx, tx, session)
	})
	return errors.WithStack(err)
}

func (svc *Service) insertSession(ctx context.Context, tx bun.Tx, session *models.Session) error {
	book := &models.Book{}
	err := tx.
		NewSelect().
		Model(book).
		Where("b.id = ?", session.BookID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errcodes.NotFound("Book")
		}
		return errors.WithStack(err)
	}

	// bookTitle is a point-in-time copy; later title edits don't touch it.
	session.BookTitle = book.Title
	session.ReadingNumber = book.ReadCount + 1

	_, err = tx.
		NewInsert().
		Model(session).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return svc.syncBookProgress(ctx, tx, book, session)
}

// syncBookProgress advances the book iff the new session's end value is
// strictly past the progress read in this transaction. Backdated sessions
// that don't advance anything leave the book untouched.
func (svc *Service) syncBookProgress(ctx context.Context, tx bun.Tx, book *models.Book, session *models.Session) error {
	endValue := session.EndValue(book.TrackingType)
	if endValue == nil || *endValue <= book.CurrentProgress() {
		return nil
	}

	if book.TrackingType == models.TrackingTypeChapters {
		book.CurrentChapter = *endValue
	} else {
		book.CurrentPage = *endValue
	}

	columns := []string{"currentPage", "currentChapter", "status", "updatedAt"}

	target := book.ProgressTarget()
	isFinished := target != nil && *endValue >= *target
	if isFinished && book.Status != models.StatusFinished {
		book.Status = models.StatusFinished
		book.ReadCount++
		columns = append(columns, "readCount")
	} else {
		book.Status = models.StatusReading
	}

	book.UpdatedAt = time.Now()

	_, err := tx.
		NewUpdate().
		Model(book).
		Column(columns...).
		WherePK().
		Exec(ctx)
	return errors.WithStack(err)
}

// updateSession replaces the stored row wholesale, except for readingNumber,
// which is fixed at insert time. Correcting a past session's range never
// re-syncs the book.
func (svc *Service) updateSession(ctx context.Context, tx bun.Tx, session *models.Session) error {
	res, err := tx.
		NewUpdate().
		Model(session).
		Column("startTime", "endTime", "startPage", "endPage", "startChapter", "endChapter", "duration").
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
		return errcodes.NotFound("Session")
	}

	return nil
}

func validateSession(session *models.Session) error {
	if session.StartTime == "" {
		return errcodes.ValidationError(`"startTime" is required`)
	}

	if session.EndTime != nil && *session.EndTime != "" {
		start, startErr := time.Parse(time.RFC3339, session.StartTime)
		end, endErr := time.Parse(time.RFC3339, *session.EndTime)
		if startErr == nil && endErr == nil && end.Before(start) {
			return errcodes.ValidationError(`"endTime" must not be before "startTime"`)
		}
	}

	usesPages := session.StartPage != nil || session.EndPage != nil
	usesChapters := session.StartChapter != nil || session.EndChapter != nil
	if usesPages && usesChapters {
		return errcodes.ValidationError("A session tracks either pages or chapters, not both.")
	}
	if !usesPages && !usesChapters {
		return errcodes.ValidationError("A session needs a page or chapter range.")
	}

	return nil
}

func (svc *Service) RetrieveSession(ctx context.Context, opts RetrieveSessionOptions) (*models.Session, error) {
	session := &models.Session{}

	q := svc.db.
		NewSelect().
		Model(session)

	if opts.ID != nil {
		q = q.Where("s.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Session")
		}
		return nil, errors.WithStack(err)
	}

	return session, nil
}

// ListSessions returns sessions most recent first.
func (svc *Service) ListSessions(ctx context.Context, opts ListSessionsOptions) ([]*models.Session, error) {
	sessions, _, err := svc.listSessions(ctx, opts)
	return sessions, errors.WithStack(err)
}

func (svc *Service) ListSessionsPage(ctx context.Context, opts ListSessionsOptions) (*Page, error) {
	if opts.Pagination == nil {
		opts.Pagination = &pagination.Params{Page: 1, PageSize: 20}
	}
	opts.includeTotal = true

	sessions, total, err := svc.listSessions(ctx, opts)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Page{
		Sessions: sessions,
		Metadata: pagination.NewMetadata(total, *opts.Pagination),
	}, nil
}

func (svc *Service) listSessions(ctx context.Context, opts ListSessionsOptions) ([]*models.Session, int, error) {
	sessions := []*models.Session{}
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&sessions).
		Order("s.startTime DESC")

	if opts.Pagination != nil {
		q = q.Limit(opts.Pagination.Limit()).Offset(opts.Pagination.Offset())
	}
	if opts.BookID != nil {
		q = q.Where("s.bookId = ?", *opts.BookID)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return sessions, total, nil
}

// DeleteSession removes the row. Book progress is not recomputed; deleting a
// session doesn't rewind anything.
func (svc *Service) DeleteSession(ctx context.Context, id int) error {
	res, err := svc.db.
		NewDelete().
		Model((*models.Session)(nil)).
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
		return errcodes.NotFound("Session")
	}

	return nil
}
