package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/hub"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

type SettingsStore interface {
	FetchSettings(ctx context.Context, playerId int64) (*repository.PlayerSettings, error)
	UpsertSettings(ctx context.Context, p repository.PlayerSettings) (*repository.PlayerSettings, error)
}

type GameHandler struct {
	log      *logrus.Logger
	hub      *hub.Hub
	store    SettingsStore
	defaults mines.Settings
	ws       *config.WebSocket
}

func NewGameHandler(
	log *logrus.Logger,
	h *hub.Hub,
	store SettingsStore,
	defaults mines.Settings,
	ws *config.WebSocket,
) *GameHandler {
	handler := &GameHandler{
		log:      log,
		hub:      h,
		store:    store,
		defaults: defaults,
		ws:       ws,
	}

	return handler
}

/*
 * settingsFor returns the stored settings of a logged-in player, or the
 * server defaults.
 */
func (g GameHandler) settingsFor(r *http.Request) mines.Settings {
	claims, ok := playerClaims(r)
	if !ok || g.store == nil {
		return g.defaults
	}
	stored, err := g.store.FetchSettings(r.Context(), claims.PlayerId)
	if errors.Is(err, pgx.ErrNoRows) {
		return g.defaults
	}
	if err != nil {
		g.log.WithError(err).WithField("player_id", claims.PlayerId).
			Error("unable to fetch player settings")
		return g.defaults
	}
	settings, err := stored.Settings()
	if err != nil {
		g.log.WithError(err).WithField("player_id", claims.PlayerId).
			Warn("stored player settings are invalid")
		return g.defaults
	}
	return settings
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	settings := g.settingsFor(r)

	dto, err := ParseDifficultyDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	if dto.given() {
		difficulty, err := dto.Difficulty()
		if err != nil {
			sendError(w, g.log, http.StatusBadRequest, err)
			return
		}
		settings.Difficulty = difficulty
	}

	owner := hub.Anonymous
	if claims, ok := playerClaims(r); ok {
		owner = claims.PlayerId
	}
	id, view := g.hub.CreateFor(owner, settings)
	g.log.WithFields(logrus.Fields{
		"id":         id,
		"difficulty": view.Difficulty,
	}).Info("new game")

	sendStatusJSON(w, g.log, http.StatusCreated, NewGameDTO(id, view))
}

// do runs fn on the game named in the path and sends the resulting view.
func (g GameHandler) do(w http.ResponseWriter, r *http.Request, fn func(s *mines.Session) bool) {
	id := r.PathValue("id")
	view, err := g.hub.Do(id, fn)
	if errors.Is(err, hub.ErrNotFound) {
		sendError(w, g.log, http.StatusNotFound, err)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	sendJSONOrLog(w, g.log, NewGameDTO(id, view))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	g.do(w, r, func(*mines.Session) bool { return false })
}

/*
 * pointer resolves the cell from the query against the session's board.
 * A bad cell leaves the session untouched and answers 400.
 */
func (g GameHandler) pointer(
	w http.ResponseWriter, r *http.Request,
	action func(s *mines.Session, i int, b mines.Button) bool,
) {
	dto, err := ParsePointerDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	var cellErr error
	id := r.PathValue("id")
	view, err := g.hub.Do(id, func(s *mines.Session) bool {
		i, err := dto.Cell(s.Dimensions())
		if err != nil {
			cellErr = err
			return false
		}
		return action(s, i, dto.MouseButton())
	})
	switch {
	case errors.Is(err, hub.ErrNotFound):
		sendError(w, g.log, http.StatusNotFound, err)
	case err != nil:
		w.WriteHeader(http.StatusInternalServerError)
	case cellErr != nil:
		sendError(w, g.log, http.StatusBadRequest, cellErr)
	default:
		sendJSONOrLog(w, g.log, NewGameDTO(id, view))
	}
}

func (g GameHandler) Press(w http.ResponseWriter, r *http.Request) {
	g.pointer(w, r, (*mines.Session).Press)
}

func (g GameHandler) Release(w http.ResponseWriter, r *http.Request) {
	g.pointer(w, r, (*mines.Session).Release)
}

func (g GameHandler) Leave(w http.ResponseWriter, r *http.Request) {
	g.do(w, r, (*mines.Session).Leave)
}

func (g GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	g.do(w, r, func(s *mines.Session) bool {
		s.Reset()
		return true
	})
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	g.do(w, r, (*mines.Session).Forfeit)
}

func (g GameHandler) SetDifficulty(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseDifficultyDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	difficulty, err := dto.Difficulty()
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	g.do(w, r, func(s *mines.Session) bool {
		s.SetDifficulty(difficulty)
		return true
	})
}

// SetSettings applies a (partial) JSON settings body to one game.
func (g GameHandler) SetSettings(w http.ResponseWriter, r *http.Request) {
	var dto SettingsDTO
	if err := decodeJSON(r, &dto); err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	var settingsErr error
	id := r.PathValue("id")
	view, err := g.hub.Do(id, func(s *mines.Session) bool {
		settings, err := dto.Settings(s.Settings())
		if err != nil {
			settingsErr = err
			return false
		}
		s.SetSettings(settings)
		return true
	})
	switch {
	case errors.Is(err, hub.ErrNotFound):
		sendError(w, g.log, http.StatusNotFound, err)
	case err != nil:
		w.WriteHeader(http.StatusInternalServerError)
	case settingsErr != nil:
		sendError(w, g.log, http.StatusBadRequest, settingsErr)
	default:
		sendJSONOrLog(w, g.log, NewGameDTO(id, view))
	}
}
