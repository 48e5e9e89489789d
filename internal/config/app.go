package config

import (
	"fmt"
	"time"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type App struct {
	Port              string
	SessionTTL        time.Duration
	DefaultDifficulty mines.Difficulty
}

func NewApp() (*App, error) {
	env := newEnv()

	ttl := env.GetDuration("GAME_SESSION_TTL")
	if ttl <= 0 {
		return nil, fmt.Errorf(
			"invalid GAME_SESSION_TTL %q", env.GetString("GAME_SESSION_TTL"),
		)
	}

	difficulty, err := mines.ParseDifficulty(env.GetString("GAME_DEFAULT_DIFFICULTY"))
	if err != nil {
		return nil, fmt.Errorf("invalid GAME_DEFAULT_DIFFICULTY: %w", err)
	}

	app := &App{
		Port:              env.GetString("APP_PORT"),
		SessionTTL:        ttl,
		DefaultDifficulty: difficulty,
	}

	return app, nil
}

// DefaultSettings are the settings of games started without a player.
func (a App) DefaultSettings() mines.Settings {
	s := mines.DefaultSettings()
	s.Difficulty = a.DefaultDifficulty
	return s
}
