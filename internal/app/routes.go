package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/vancomm/minesweeper-engine/internal/handlers"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	defaults := a.cfg.DefaultSettings()

	var store handlers.SettingsStore
	if a.db != nil {
		store = repository.New(a.db)
	}

	game := handlers.NewGameHandler(a.log, a.hub, store, defaults, a.ws)

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("POST /game/{id}/press", game.Press)
	a.router.HandleFunc("POST /game/{id}/release", game.Release)
	a.router.HandleFunc("POST /game/{id}/leave", game.Leave)
	a.router.HandleFunc("POST /game/{id}/reset", game.Reset)
	a.router.HandleFunc("POST /game/{id}/difficulty", game.SetDifficulty)
	a.router.HandleFunc("POST /game/{id}/settings", game.SetSettings)
	a.router.HandleFunc("POST /game/{id}/forfeit", game.Forfeit)
	a.router.HandleFunc("/game/{id}/connect", game.ConnectWS)

	if a.db == nil {
		return
	}

	queries := repository.New(a.db)
	auth := handlers.NewAuth(a.log, queries, a.cookies)
	settings := handlers.NewSettingsHandler(a.log, queries, a.hub, defaults)

	a.router.HandleFunc("POST /register", auth.Register)
	a.router.HandleFunc("POST /login", auth.Login)
	a.router.HandleFunc("POST /logout", auth.Logout)
	a.router.HandleFunc("GET /status", auth.Status)
	a.router.HandleFunc("GET /settings", settings.Fetch)
	a.router.HandleFunc("PUT /settings", settings.Update)
}
