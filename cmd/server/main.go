package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/app"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func main() {
	log, err := config.NewLogger()
	if err != nil {
		logrus.Fatal("unable to set up logging: ", err)
	}
	mines.Log = log

	cfg, err := config.NewApp()
	if err != nil {
		log.Fatal("unable to read config: ", err)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	log.WithFields(logrus.Fields{
		"port":        cfg.Port,
		"session_ttl": cfg.SessionTTL.String(),
		"difficulty":  cfg.DefaultDifficulty.String(),
		"development": config.Development(),
	}).Info("starting up")

	if err := app.New(log, cfg).Start(ctx); err != nil {
		log.Fatal("exit reason: ", err)
	}
	log.Info("shut down")
}
