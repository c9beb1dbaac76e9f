package sessions

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/readlogapp/readlog/pkg/books"
	"github.com/readlogapp/readlog/pkg/errcodes"
	"github.com/readlogapp/readlog/pkg/models"
)

type handler struct {
	sessionsService *Service
	booksService    *books.Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListSessionsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	page, err := h.sessionsService.ListSessionsPage(ctx, ListSessionsOptions{
		Pagination: &params.Params,
		BookID:     params.BookID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, page))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Session")
	}

	session, err := h.sessionsService.RetrieveSession(ctx, RetrieveSessionOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, session))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := SaveSessionPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	session := &models.Session{
		BookID:       params.BookID,
		StartTime:    params.StartTime,
		EndTime:      params.EndTime,
		StartPage:    params.StartPage,
		EndPage:      params.EndPage,
		StartChapter: params.StartChapter,
		EndChapter:   params.EndChapter,
		Duration:     params.Duration,
	}

	if err := h.sessionsService.SaveSession(ctx, session); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, session))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Session")
	}

	params := UpdateSessionPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	session, err := h.sessionsService.RetrieveSession(ctx, RetrieveSessionOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}

	if params.StartTime != nil {
		session.StartTime = *params.StartTime
	}
	if params.EndTime != nil {
		session.EndTime = params.EndTime
	}
	if params.StartPage != nil {
		session.StartPage = params.StartPage
	}
	if params.EndPage != nil {
		session.EndPage = params.EndPage
	}
	if params.StartChapter != nil {
		session.StartChapter = params.StartChapter
	}
	if params.EndChapter != nil {
		session.EndChapter = params.EndChapter
	}
	if params.Duration != nil {
		session.Duration = params.Duration
	}

	if err := h.sessionsService.SaveSession(ctx, session); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, session))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Session")
	}

	if err := h.sessionsService.DeleteSession(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

func (h *handler) complete(c echo.Context) error {
	ctx := c.Request().Context()

	params := CompleteSessionPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.booksService.RetrieveBook(ctx, books.RetrieveBookOptions{ID: &params.BookID})
	if err != nil {
		return errors.WithStack(err)
	}

	active := &ActiveSession{
		StartTime:    params.StartTime,
		StartPage:    params.StartPage,
		StartChapter: params.StartChapter,
	}

	session, analysis, err := h.sessionsService.CompleteSession(ctx, book, active, params.EndValue, params.DurationSeconds)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, echo.Map{
		"session":  session,
		"analysis": analysis,
	}))
}
