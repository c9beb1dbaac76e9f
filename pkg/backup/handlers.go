package backup

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	backupService *Service
	backupDir     string
}

func (h *handler) export(c echo.Context) error {
	ctx := c.Request().Context()

	doc, err := h.backupService.Export(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, doc))
}

func (h *handler) exportToFile(c echo.Context) error {
	ctx := c.Request().Context()

	doc, err := h.backupService.Export(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	path, err := WriteDocument(doc, h.backupDir)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, echo.Map{"path": path}))
}

func (h *handler) importDocument(c echo.Context) error {
	ctx := c.Request().Context()

	doc := &Document{}
	if err := c.Bind(doc); err != nil {
		return errors.WithStack(err)
	}

	summary, err := h.backupService.Import(ctx, doc)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, summary))
}
