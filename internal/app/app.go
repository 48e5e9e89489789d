package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/database"
	"github.com/vancomm/minesweeper-engine/internal/hub"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	log     *logrus.Logger
	cfg     *config.App
	router  *http.ServeMux
	db      *pgxpool.Pool
	hub     *hub.Hub
	cookies *config.Cookies
	ws      *config.WebSocket
}

func New(log *logrus.Logger, cfg *config.App) *App {
	app := &App{
		log:    log,
		cfg:    cfg,
		router: http.NewServeMux(),
		hub:    hub.New(log, cfg.SessionTTL, createRand()),
		ws:     config.NewWebSocket(),
	}

	return app
}

/*
 * connect sets up accounts and stored settings. Without database
 * configuration the server still runs, anonymous games only.
 */
func (a *App) connect(ctx context.Context) error {
	if _, err := config.DatabaseURL(); err != nil {
		a.log.WithError(err).Warn("no database configured, accounts disabled")
		return nil
	}

	db, migrator, err := database.ConnectAndMigrate(ctx)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	if version, dirty, err := migrator.Version(); err == nil {
		a.log.WithFields(logrus.Fields{
			"version": version,
			"dirty":   dirty,
		}).Info("database migrated")
	}
	migrator.Close()
	a.db = db

	jwt, err := config.NewJWT()
	if err != nil {
		return err
	}
	cookies, err := config.NewCookies(jwt)
	if err != nil {
		return err
	}
	a.cookies = cookies

	return nil
}

func (a *App) handler() http.Handler {
	mws := []middleware.Middleware{}
	if a.cookies != nil {
		mws = append(mws, middleware.Auth(a.log, a.cookies))
	}
	mws = append(mws, middleware.Cors(), middleware.Logging(a.log))
	return middleware.Wrap(a.router, mws...)
}

func (a *App) Start(ctx context.Context) error {
	if err := a.connect(ctx); err != nil {
		return err
	}
	if a.db != nil {
		defer a.db.Close()
	}

	a.loadRoutes()

	server := &http.Server{
		Addr:    a.cfg.Port,
		Handler: a.handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.Infof("ready to serve @ %s", a.cfg.Port)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return a.hub.Run(gCtx)
	})

	return g.Wait()
}
