package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/readlogapp/readlog/pkg/backup"
	"github.com/readlogapp/readlog/pkg/binder"
	"github.com/readlogapp/readlog/pkg/books"
	"github.com/readlogapp/readlog/pkg/config"
	"github.com/readlogapp/readlog/pkg/errcodes"
	"github.com/readlogapp/readlog/pkg/notes"
	"github.com/readlogapp/readlog/pkg/sessions"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

// New builds the HTTP server. There is no auth layer; this is a single-user
// app listening on localhost.
func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	books.RegisterRoutesWithGroup(e.Group("/books"), db)
	sessions.RegisterRoutesWithGroup(e.Group("/sessions"), db)
	notes.RegisterRoutesWithGroup(e.Group("/notes"), db)
	backup.RegisterRoutesWithGroup(e.Group("/backup"), db, cfg.User.BackupDirectory)
	config.RegisterRoutes(e, cfg)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
