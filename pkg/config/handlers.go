package config

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type UpdateConfigPayload struct {
	DefaultPageSize *int    `json:"default_page_size,omitempty" validate:"omitempty,min=1,max=100"`
	BackupDirectory *string `json:"backup_directory,omitempty" validate:"omitempty,min=1"`
}

type handler struct {
	cfg *Config
}

func (h *handler) retrieve(c echo.Context) error {
	return errors.WithStack(c.JSON(http.StatusOK, h.cfg.User))
}

func (h *handler) update(c echo.Context) error {
	params := UpdateConfigPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	changed := false

	if params.DefaultPageSize != nil && h.cfg.User.DefaultPageSize != *params.DefaultPageSize {
		h.cfg.User.DefaultPageSize = *params.DefaultPageSize
		changed = true
	}
	if params.BackupDirectory != nil && h.cfg.User.BackupDirectory != *params.BackupDirectory {
		h.cfg.User.BackupDirectory = *params.BackupDirectory
		changed = true
	}

	if changed {
		if err := h.cfg.Save(); err != nil {
			return errors.WithStack(err)
		}
	}

	return errors.WithStack(c.JSON(http.StatusOK, h.cfg.User))
}
