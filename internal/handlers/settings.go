package handlers

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/hub"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrNotYourGame = errors.New("game belongs to another player")
)

type SettingsHandler struct {
	log      *logrus.Logger
	store    SettingsStore
	hub      *hub.Hub
	defaults mines.Settings
}

func NewSettingsHandler(
	log *logrus.Logger, store SettingsStore, h *hub.Hub, defaults mines.Settings,
) *SettingsHandler {
	return &SettingsHandler{log: log, store: store, hub: h, defaults: defaults}
}

func (h SettingsHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	claims, ok := playerClaims(r)
	if !ok {
		sendError(w, h.log, http.StatusUnauthorized, ErrNotLoggedIn)
		return
	}

	stored, err := h.store.FetchSettings(r.Context(), claims.PlayerId)
	if errors.Is(err, pgx.ErrNoRows) {
		sendJSONOrLog(w, h.log, NewSettingsDTO(h.defaults))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to fetch player settings")
		return
	}
	settings, err := stored.Settings()
	if err != nil {
		h.log.WithError(err).Warn("stored player settings are invalid")
		settings = h.defaults
	}
	sendJSONOrLog(w, h.log, NewSettingsDTO(settings))
}

/*
 * Update stores the player's settings. With ?game=<id> the running game
 * picks them up as well; that game must have been started by the same
 * player.
 */
func (h SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := playerClaims(r)
	if !ok {
		sendError(w, h.log, http.StatusUnauthorized, ErrNotLoggedIn)
		return
	}

	var dto SettingsDTO
	if err := decodeJSON(r, &dto); err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}

	base := h.defaults
	stored, err := h.store.FetchSettings(r.Context(), claims.PlayerId)
	switch {
	case err == nil:
		if s, err := stored.Settings(); err == nil {
			base = s
		}
	case !errors.Is(err, pgx.ErrNoRows):
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to fetch player settings")
		return
	}

	settings, err := dto.Settings(base)
	if err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}

	gameId := r.URL.Query().Get("game")
	if gameId != "" {
		owner, err := h.hub.Owner(gameId)
		if errors.Is(err, hub.ErrNotFound) {
			sendError(w, h.log, http.StatusNotFound, err)
			return
		}
		if owner != claims.PlayerId {
			sendError(w, h.log, http.StatusForbidden, ErrNotYourGame)
			return
		}
	}

	if _, err := h.store.UpsertSettings(
		r.Context(), repository.NewPlayerSettings(claims.PlayerId, settings),
	); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to store player settings")
		return
	}

	if gameId != "" {
		_, err := h.hub.Do(gameId, func(s *mines.Session) bool {
			s.SetSettings(settings)
			return true
		})
		if err != nil {
			h.log.WithError(err).WithField("id", gameId).Debug("settings not applied to game")
		}
	}

	sendJSONOrLog(w, h.log, NewSettingsDTO(settings))
}
