package backup

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers backup routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, backupDir string) {
	h := &handler{
		backupService: NewService(db),
		backupDir:     backupDir,
	}

	g.GET("/export", h.export)
	g.POST("/export/file", h.exportToFile)
	g.POST("/import", h.importDocument)
}
