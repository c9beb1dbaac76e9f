package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/readlogapp/readlog/pkg/config"
	"github.com/readlogapp/readlog/pkg/database"
	"github.com/readlogapp/readlog/pkg/migrations"
	"github.com/readlogapp/readlog/pkg/schema"
	"github.com/readlogapp/readlog/pkg/server"
	"github.com/readlogapp/readlog/pkg/version"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/signals"
)

func main() {
	ctx := context.Background()
	log := logger.New()

	log.Info("starting readlog", logger.Data{"version": version.Version})

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	if err := initDataDir(cfg.DatabaseFilePath); err != nil {
		log.Err(err).Fatal("data directory error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	if err := schema.EnsureBaseTables(ctx, db); err != nil {
		log.Err(err).Fatal("schema error")
	}

	// Migrations and indexes never stop startup: failures are logged and the
	// app runs against whatever schema version it has.
	report := migrations.BringUpToDate(ctx, db)
	migrations.EnsureIndexes(ctx, db, report)
	switch {
	case !report.OK():
		log.Err(report.Failure).Error("migrations failed, continuing on stored version", logger.Data{
			"run_id":         report.RunID,
			"stored_version": report.StoredVersion,
		})
	case len(report.Applied) == 0:
		log.Info("schema already up to date", logger.Data{"version": report.TargetVersion})
	default:
		log.Info("schema migrated", logger.Data{
			"run_id":         report.RunID,
			"from":           report.StoredVersion,
			"to":             report.TargetVersion,
			"applied":        report.Applied,
			"index_failures": len(report.IndexFailures()),
		})
	}

	srv, err := server.New(cfg, db)
	if err != nil {
		log.Err(err).Fatal("server error")
	}

	graceful := signals.Setup()

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort)
		lc := net.ListenConfig{}
		listener, err := lc.Listen(ctx, "tcp", addr)
		if err != nil {
			log.Err(err).Fatal("failed to bind port")
		}

		actualPort := listener.Addr().(*net.TCPAddr).Port
		log.Info("server started", logger.Data{"port": actualPort})

		err = srv.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Fatal("server stopped")
		}
		log.Info("server stopped")
	}()

	<-graceful
	log.Info("starting graceful shutdown")

	err = srv.Shutdown(ctx)
	if err != nil {
		log.Err(err).Error("server shutdown error")
	}
	log.Info("server shutdown")

	err = db.Close()
	if err != nil {
		log.Err(err).Error("database close error")
	}
	log.Info("database closed")
}

// initDataDir makes sure the directory holding the database file exists and
// is writable before the driver tries to open it.
func initDataDir(dbPath string) error {
	if dbPath == ":memory:" {
		return nil
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create data directory: %s", dir)
	}

	testFile := filepath.Join(dir, ".write_test")
	f, err := os.Create(testFile)
	if err != nil {
		return errors.Wrapf(err, "data directory is not writable: %s", dir)
	}
	f.Close()

	if err := os.Remove(testFile); err != nil {
		return errors.Wrapf(err, "failed to clean up write test file: %s", testFile)
	}

	return nil
}
