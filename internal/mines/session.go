package mines

import "fmt"

const (
	MaxElapsedSeconds = 999
	MinMinesRemaining = -99
)

type Face int8

const (
	Happy Face = iota
	Nervous
	Dead
	Cool
)

func (f Face) String() string {
	switch f {
	case Nervous:
		return "nervous"
	case Dead:
		return "dead"
	case Cool:
		return "cool"
	default:
		return "happy"
	}
}

// [Face] implements [encoding.TextMarshaler]
func (f Face) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// [Face] implements [encoding.TextUnmarshaler]
func (f *Face) UnmarshalText(text []byte) error {
	for _, candidate := range []Face{Happy, Nervous, Dead, Cool} {
		if string(text) == candidate.String() {
			*f = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown face %q", text)
}

// Session is a single player's game as seen by the input and rendering
// layers. It is not safe for concurrent use; the host serialises calls.
type Session struct {
	settings Settings
	game     *Game
	input    Input
	pressed  int
	elapsed  int
}

func NewSession(settings Settings, r Rand) *Session {
	return &Session{
		settings: settings,
		game: NewGame(
			settings.Dimensions(), settings.FirstClick, settings.AllowQuestion, r,
		),
		pressed: -1,
	}
}

func (s *Session) Game() *Game            { return s.game }
func (s *Session) Settings() Settings     { return s.settings }
func (s *Session) Dimensions() Dimensions { return s.game.board.dims }
func (s *Session) Status() Status         { return s.game.status }
func (s *Session) Input() Input           { return s.input }

// Press handles a button going down over cell i. A right press marks the
// cell right away; left presses only select it until release.
func (s *Session) Press(i int, b Button) bool {
	prev := s.input
	s.input = prev.Press(b)
	if !s.game.Playable() || !s.game.board.Contains(i) {
		return false
	}
	switch s.input {
	case InputLeft, InputBoth:
		s.pressed = i
		return true
	case InputRight:
		if prev == InputNeither {
			return s.game.ToggleMark(i)
		}
	}
	return prev != s.input
}

// Release handles a button coming up over cell i. The action fires only
// if i is the cell that was pressed; otherwise it is abandoned.
//
// panics [AssertionError]
func (s *Session) Release(i int, b Button) bool {
	prev := s.input
	s.input = prev.Release(b)
	if !s.game.Playable() {
		s.pressed = -1
		return false
	}

	switch prev {
	case InputLeft:
		if s.input != InputNeither {
			return false
		}
	case InputBoth:
		if s.input == InputBoth {
			return false
		}
	default:
		if s.input == InputNeither && s.pressed >= 0 {
			s.pressed = -1
			return true
		}
		return prev != s.input
	}

	target := s.pressed
	s.pressed = -1
	if target < 0 || target != i {
		return target >= 0
	}

	revealed := s.game.board.cells[i].IsRevealed()
	if prev.IsChording(s.settings.Chord, revealed) {
		if s.settings.Chord != NoChord {
			s.game.Chord(i)
		}
		return true
	}
	s.game.Reveal(i)
	return true
}

// Leave abandons whatever press is in progress, as when the pointer moves
// off the board.
func (s *Session) Leave() bool {
	changed := s.pressed >= 0 || s.input != InputNeither
	s.pressed = -1
	s.input = InputNeither
	return changed
}

// Tick advances the clock by one second while the game is active.
func (s *Session) Tick() bool {
	if s.game.status != Active || s.elapsed >= MaxElapsedSeconds {
		return false
	}
	s.elapsed++
	return true
}

// Forfeit gives up the game in progress.
func (s *Session) Forfeit() bool {
	s.pressed = -1
	return s.game.Forfeit()
}

func (s *Session) Reset() {
	s.game.Resize(s.settings.Dimensions())
	s.input = InputNeither
	s.pressed = -1
	s.elapsed = 0
}

// SetDifficulty always starts a new game.
func (s *Session) SetDifficulty(d Difficulty) {
	s.settings.Difficulty = d
	s.Reset()
}

// SetSettings applies new settings. A change of dimensions starts a new
// game; the other settings take effect immediately, the first click
// policy from the next generated board.
func (s *Session) SetSettings(settings Settings) {
	resize := settings.Dimensions() != s.settings.Dimensions()
	s.settings = settings
	s.game.SetFirstClickPolicy(settings.FirstClick)
	s.game.SetAllowQuestion(settings.AllowQuestion)
	if resize {
		s.Reset()
	}
}

func (s *Session) ElapsedSeconds() int {
	return min(s.elapsed, MaxElapsedSeconds)
}

// MinesRemaining is the counter shown to the player: mines minus flags,
// which goes negative when the player over-flags.
func (s *Session) MinesRemaining() int {
	return max(s.game.board.dims.MineCount-s.game.FlaggedCount(), MinMinesRemaining)
}

func (s *Session) Pressed() (int, bool) {
	return s.pressed, s.pressed >= 0
}

func (s *Session) chording() bool {
	if s.pressed < 0 || s.settings.Chord == NoChord {
		return false
	}
	return s.input.IsChording(
		s.settings.Chord, s.game.board.cells[s.pressed].IsRevealed(),
	)
}

// Highlighted reports whether cell i should be drawn pressed: the held
// cell itself and, while chording, its neighbours.
func (s *Session) Highlighted(i int) bool {
	if s.pressed < 0 || !s.game.board.Contains(i) {
		return false
	}
	if i == s.pressed {
		return true
	}
	return s.chording() && s.game.board.IsNeighbor(s.pressed, i)
}

func (s *Session) Face() Face {
	switch {
	case s.game.status == Lost:
		return Dead
	case s.game.status == Won:
		return Cool
	case s.input != InputNeither:
		return Nervous
	default:
		return Happy
	}
}

func (s *Session) Token(i int) Token {
	return s.game.Token(i)
}

func (s *Session) Grid() Grid {
	return s.game.Grid()
}

// SessionView is a read-only snapshot for the presentation layer.
type SessionView struct {
	Difficulty     string `json:"difficulty"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	MineCount      int    `json:"mine_count"`
	Chord          string `json:"chord"`
	FirstClick     string `json:"first_click"`
	AllowQuestion  bool   `json:"allow_question"`
	Status         Status `json:"status"`
	Face           Face   `json:"face"`
	MinesRemaining int    `json:"mines_remaining"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
	Pressed        *int   `json:"pressed,omitempty"`
	Highlighted    []int  `json:"highlighted,omitempty"`
	Grid           Grid   `json:"grid"`
}

func (s *Session) Snapshot() SessionView {
	w, h, mc := s.Dimensions().Unpack()
	v := SessionView{
		Difficulty:     s.settings.Difficulty.String(),
		Width:          w,
		Height:         h,
		MineCount:      mc,
		Chord:          s.settings.Chord.String(),
		FirstClick:     s.settings.FirstClick.String(),
		AllowQuestion:  s.settings.AllowQuestion,
		Status:         s.game.status,
		Face:           s.Face(),
		MinesRemaining: s.MinesRemaining(),
		ElapsedSeconds: s.ElapsedSeconds(),
		Grid:           s.Grid(),
	}
	if p, ok := s.Pressed(); ok {
		v.Pressed = &p
		for i := range s.game.board.cells {
			if s.Highlighted(i) {
				v.Highlighted = append(v.Highlighted, i)
			}
		}
	}
	return v
}
