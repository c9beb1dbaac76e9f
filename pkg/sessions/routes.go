package sessions

import (
	"github.com/labstack/echo/v4"
	"github.com/readlogapp/readlog/pkg/books"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers sessions routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	h := &handler{
		sessionsService: NewService(db),
		booksService:    books.NewService(db),
	}

	g.GET("", h.list)
	g.POST("", h.create)
	g.POST("/complete", h.complete)
	g.GET("/:id", h.retrieve)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
}
