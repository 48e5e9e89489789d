package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

/*
 * PlayerSettings stores [mines.Settings] in their text forms so the
 * table stays readable and survives enum reordering.
 */
type PlayerSettings struct {
	PlayerId      int64              `db:"player_id"`
	Difficulty    string             `db:"difficulty"`
	Chord         string             `db:"chord"`
	FirstClick    string             `db:"first_click"`
	AllowQuestion bool               `db:"allow_question"`
	CreatedAt     pgtype.Timestamptz `db:"created_at"`
	UpdatedAt     pgtype.Timestamptz `db:"updated_at"`
}

func NewPlayerSettings(playerId int64, s mines.Settings) PlayerSettings {
	return PlayerSettings{
		PlayerId:      playerId,
		Difficulty:    s.Difficulty.String(),
		Chord:         s.Chord.String(),
		FirstClick:    s.FirstClick.String(),
		AllowQuestion: s.AllowQuestion,
	}
}

func (p PlayerSettings) Settings() (mines.Settings, error) {
	var (
		s   mines.Settings
		err error
	)
	if s.Difficulty, err = mines.ParseDifficulty(p.Difficulty); err != nil {
		return s, fmt.Errorf("stored difficulty: %w", err)
	}
	if s.Chord, err = mines.ParseChordSetting(p.Chord); err != nil {
		return s, fmt.Errorf("stored chord setting: %w", err)
	}
	if s.FirstClick, err = mines.ParseFirstClickPolicy(p.FirstClick); err != nil {
		return s, fmt.Errorf("stored first click policy: %w", err)
	}
	s.AllowQuestion = p.AllowQuestion
	return s, nil
}

const playerSettingsColumns = `player_id, difficulty, chord, first_click,
	allow_question, created_at, updated_at`

func (q *Queries) FetchSettings(ctx context.Context, playerId int64) (*PlayerSettings, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT "+playerSettingsColumns+" FROM player_settings WHERE player_id = $1",
		playerId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[PlayerSettings])
}

func (q *Queries) UpsertSettings(ctx context.Context, p PlayerSettings) (*PlayerSettings, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO player_settings (
			player_id, difficulty, chord, first_click, allow_question
		)
		VALUES (
			@player_id, @difficulty, @chord, @first_click, @allow_question
		)
		ON CONFLICT (player_id) DO UPDATE SET
			difficulty = EXCLUDED.difficulty,
			chord = EXCLUDED.chord,
			first_click = EXCLUDED.first_click,
			allow_question = EXCLUDED.allow_question,
			updated_at = now()
		RETURNING `+playerSettingsColumns,
		pgx.NamedArgs{
			"player_id":      p.PlayerId,
			"difficulty":     p.Difficulty,
			"chord":          p.Chord,
			"first_click":    p.FirstClick,
			"allow_question": p.AllowQuestion,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[PlayerSettings])
}
