package handlers

import (
	"errors"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	ErrNoDifficulty   = errors.New("level or width, height and mine_count required")
	ErrNoCell         = errors.New("index or x and y required")
	ErrCellOutOfBoard = errors.New("cell is outside the board")
)

/*
 * DifficultyDTO is decoded from the query string. A level may be a preset
 * name, "custom" with width/height/mine_count, or "WxH/M".
 */
type DifficultyDTO struct {
	Level     string `schema:"level"`
	Width     int    `schema:"width"`
	Height    int    `schema:"height"`
	MineCount int    `schema:"mine_count"`
}

func (d DifficultyDTO) given() bool {
	return d.Level != "" || d.Width != 0 || d.Height != 0
}

func (d DifficultyDTO) Difficulty() (mines.Difficulty, error) {
	if !d.given() {
		return mines.Difficulty{}, ErrNoDifficulty
	}
	if d.Level == "" || strings.EqualFold(d.Level, mines.Custom.String()) {
		if d.Width <= 0 || d.Height <= 0 {
			return mines.Difficulty{}, ErrNoDifficulty
		}
		return mines.CustomDifficulty(mines.Dimensions{
			Width: d.Width, Height: d.Height, MineCount: d.MineCount,
		}), nil
	}
	return mines.ParseDifficulty(d.Level)
}

func ParseDifficultyDTO(src map[string][]string) (DifficultyDTO, error) {
	var dto DifficultyDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

/*
 * PointerDTO names a cell either by index or by x/y, and the mouse
 * button involved ("left" when omitted).
 */
type PointerDTO struct {
	Index  *int   `schema:"index"`
	X      *int   `schema:"x"`
	Y      *int   `schema:"y"`
	Button string `schema:"button"`
}

func ParsePointerDTO(src map[string][]string) (PointerDTO, error) {
	var dto PointerDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

func (p PointerDTO) Cell(d mines.Dimensions) (int, error) {
	switch {
	case p.Index != nil:
		if *p.Index < 0 || *p.Index >= d.Cells() {
			return 0, ErrCellOutOfBoard
		}
		return *p.Index, nil
	case p.X != nil && p.Y != nil:
		x, y := *p.X, *p.Y
		if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
			return 0, ErrCellOutOfBoard
		}
		return y*d.Width + x, nil
	default:
		return 0, ErrNoCell
	}
}

func (p PointerDTO) MouseButton() mines.Button {
	if p.Button == "" {
		return mines.ButtonLeft
	}
	return mines.ParseButton(p.Button)
}

// SettingsDTO is the JSON form of [mines.Settings].
type SettingsDTO struct {
	Difficulty    string `json:"difficulty"`
	Chord         string `json:"chord"`
	FirstClick    string `json:"first_click"`
	AllowQuestion *bool  `json:"allow_question,omitempty"`
}

func NewSettingsDTO(s mines.Settings) SettingsDTO {
	return SettingsDTO{
		Difficulty:    s.Difficulty.String(),
		Chord:         s.Chord.String(),
		FirstClick:    s.FirstClick.String(),
		AllowQuestion: &s.AllowQuestion,
	}
}

/*
 * Settings fills in omitted fields from base, so a client may send only
 * what it changes.
 */
func (dto SettingsDTO) Settings(base mines.Settings) (mines.Settings, error) {
	s := base
	var err error
	if dto.Difficulty != "" {
		if s.Difficulty, err = mines.ParseDifficulty(dto.Difficulty); err != nil {
			return base, err
		}
	}
	if dto.Chord != "" {
		if s.Chord, err = mines.ParseChordSetting(dto.Chord); err != nil {
			return base, err
		}
	}
	if dto.FirstClick != "" {
		if s.FirstClick, err = mines.ParseFirstClickPolicy(dto.FirstClick); err != nil {
			return base, err
		}
	}
	if dto.AllowQuestion != nil {
		s.AllowQuestion = *dto.AllowQuestion
	}
	return s, nil
}

type GameDTO struct {
	ID string `json:"id"`
	mines.SessionView
}

func NewGameDTO(id string, view mines.SessionView) GameDTO {
	return GameDTO{ID: id, SessionView: view}
}
