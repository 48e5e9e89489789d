package main

import (
	"errors"
	"flag"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/database"
)

var steps int

func init() {
	flag.IntVar(&steps, "steps", 0, "migrate this many steps (negative to roll back) instead of all the way up")
}

func main() {
	flag.Parse()

	log, err := config.NewLogger()
	if err != nil {
		logrus.Fatal("unable to set up logging: ", err)
	}

	url, err := config.DatabaseURL()
	if err != nil {
		log.Fatal("no database configured: ", err)
	}

	migrator, err := database.NewMigrator(url, database.Migrations)
	if err != nil {
		log.Fatal(err)
	}
	defer migrator.Close()

	if steps != 0 {
		err = migrator.Steps(steps)
	} else {
		err = migrator.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error("migration failed: ", err)
		os.Exit(1)
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		log.WithError(err).Error("failed to check migration version")
		os.Exit(1)
	}
	log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("migration successful")
}
