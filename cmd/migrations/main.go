package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/readlogapp/readlog/pkg/config"
	"github.com/readlogapp/readlog/pkg/database"
	"github.com/readlogapp/readlog/pkg/migrations"
	"github.com/readlogapp/readlog/pkg/schema"
	"github.com/robinjoseph08/golib/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	log := logger.New()

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	app := &cli.App{
		Name:        "migrations",
		Usage:       "CLI to interact with migrations",
		Description: "CLI to interact with migrations",
		Commands: []*cli.Command{
			{
				Name:  "status",
				Usage: "print the stored and target schema versions",
				Action: func(c *cli.Context) error {
					stored, err := migrations.StoredVersion(c.Context, db)
					if err != nil {
						return err
					}

					fmt.Printf("Stored version: %d\n", stored)
					fmt.Printf("Target version: %d\n", migrations.CurrentVersion)
					if stored >= migrations.CurrentVersion {
						fmt.Printf("Schema is up to date\n")
					} else {
						fmt.Printf("Pending migration on next start\n")
					}
					return nil
				},
			},
			{
				Name:  "migrate",
				Usage: "create base tables and migrate database",
				Action: func(c *cli.Context) error {
					if err := schema.EnsureBaseTables(c.Context, db); err != nil {
						return err
					}

					report := migrations.BringUpToDate(c.Context, db)
					if !report.OK() {
						// Unlike app startup, the CLI treats a failed
						// migration as a hard error.
						return errors.WithStack(report.Failure)
					}

					migrations.EnsureIndexes(c.Context, db, report)
					for _, failure := range report.IndexFailures() {
						fmt.Printf("Index skipped: %s (%v)\n", failure.Name, failure.Err)
					}

					if len(report.Applied) == 0 {
						fmt.Printf("There are no new migrations to run\n")
						return nil
					}

					fmt.Printf("Migrated from version %d to %d (applied %v)\n", report.StoredVersion, report.TargetVersion, report.Applied)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Err(err).Fatal("command error")
	}
}
