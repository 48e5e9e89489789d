package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

type PlayerStore interface {
	CreatePlayer(ctx context.Context, params repository.CreatePlayerParams) (*repository.Player, error)
	FetchPlayer(ctx context.Context, username string) (*repository.Player, error)
}

type Auth struct {
	log     *logrus.Logger
	repo    PlayerStore
	cookies *config.Cookies
}

func NewAuth(log *logrus.Logger, repo PlayerStore, cookies *config.Cookies) *Auth {
	auth := &Auth{
		log:     log,
		repo:    repo,
		cookies: cookies,
	}

	return auth
}

type PlayerInfo struct {
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
}

type Status struct {
	LoggedIn bool        `json:"logged_in"`
	Player   *PlayerInfo `json:"player,omitempty"`
}

func (a Auth) Status(w http.ResponseWriter, r *http.Request) {
	claims, ok := playerClaims(r)
	if !ok {
		a.log.Debug("could not parse cookies - clear cookies")
		a.cookies.Clear(w)
		sendJSONOrLog(w, a.log, Status{LoggedIn: false})
		return
	}

	a.log.Debug("refresh cookies")
	if err := a.cookies.Refresh(w, claims); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.log.WithError(err).Error("unable to refresh cookies")
		return
	}

	sendJSONOrLog(w, a.log, Status{
		LoggedIn: true,
		Player:   &PlayerInfo{claims.PlayerId, claims.Username},
	})
}

var (
	ErrBadAuthBody        = fmt.Errorf("request body must contain url-encoded username and password")
	ErrBadPasswordTooLong = fmt.Errorf("password too long")
	ErrUsernameTaken      = fmt.Errorf("username taken")
	ErrBadCredentials     = fmt.Errorf("invalid username or password")
)

type credentials struct {
	username string
	password []byte
}

func parseCredentials(r *http.Request) (credentials, error) {
	if err := r.ParseForm(); err != nil {
		return credentials{}, ErrBadAuthBody
	}
	c := credentials{
		username: r.FormValue("username"),
		password: []byte(r.FormValue("password")),
	}
	if c.username == "" || len(c.password) == 0 {
		return credentials{}, ErrBadAuthBody
	}
	if len(c.password) > 72 {
		return credentials{}, ErrBadPasswordTooLong
	}
	return c, nil
}

func (a Auth) Register(w http.ResponseWriter, r *http.Request) {
	creds, err := parseCredentials(r)
	if err != nil {
		sendError(w, a.log, http.StatusBadRequest, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword(creds.password, bcrypt.MinCost)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.log.WithError(err).Error("unable to hash password")
		return
	}

	player, err := a.repo.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     creds.username,
		PasswordHash: hash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		sendError(w, a.log, http.StatusConflict, ErrUsernameTaken)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.log.WithError(err).Error("unable to insert player")
		return
	}

	a.log.WithField("username", player.Username).Info("player registered")
	a.login(w, player)
}

func (a Auth) Login(w http.ResponseWriter, r *http.Request) {
	creds, err := parseCredentials(r)
	if err != nil {
		sendError(w, a.log, http.StatusBadRequest, err)
		return
	}

	player, err := a.repo.FetchPlayer(r.Context(), creds.username)
	if errors.Is(err, pgx.ErrNoRows) {
		sendError(w, a.log, http.StatusUnauthorized, ErrBadCredentials)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.log.WithError(err).Error("unable to fetch player")
		return
	}

	if err := bcrypt.CompareHashAndPassword(player.PasswordHash, creds.password); err != nil {
		sendError(w, a.log, http.StatusUnauthorized, ErrBadCredentials)
		return
	}

	a.login(w, player)
}

func (a Auth) login(w http.ResponseWriter, player *repository.Player) {
	claims := config.NewPlayerClaims(player.PlayerId, player.Username)
	if err := a.cookies.Refresh(w, claims); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.log.WithError(err).Error("unable to create a jwt token")
		return
	}
	sendJSONOrLog(w, a.log, Status{
		LoggedIn: true,
		Player:   &PlayerInfo{player.PlayerId, player.Username},
	})
}

func (a Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}
