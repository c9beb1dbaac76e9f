package notes

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/readlogapp/readlog/pkg/errcodes"
	"github.com/readlogapp/readlog/pkg/models"
)

type handler struct {
	notesService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListNotesQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	page, err := h.notesService.ListNotesPage(ctx, ListNotesOptions{
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
		return errcodes.NotFound("Note")
	}

	note, err := h.notesService.RetrieveNote(ctx, RetrieveNoteOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, note))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateNotePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	note := &models.Note{
		BookID:     params.BookID,
		Note:       params.Note,
		PageNumber: params.PageNumber,
	}

	if err := h.notesService.CreateNote(ctx, note); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, note))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Note")
	}

	params := UpdateNotePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	note, err := h.notesService.RetrieveNote(ctx, RetrieveNoteOptions{ID: &id})
	if err != nil {
		return errors.WithStack(err)
	}

	columns := []string{}
	if params.Note != nil {
		note.Note = *params.Note
		columns = append(columns, "note")
	}
	if params.PageNumber != nil {
		note.PageNumber = params.PageNumber
		columns = append(columns, "page")
	}

	if err := h.notesService.UpdateNote(ctx, note, UpdateNoteOptions{Columns: columns}); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, note))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Note")
	}

	if err := h.notesService.DeleteNote(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}
