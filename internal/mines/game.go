package mines

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Status int8

const (
	NotStarted Status = iota
	Active
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Active:
		return "active"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// [Status] implements [encoding.TextMarshaler]
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// [Status] implements [encoding.TextUnmarshaler]
func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range []Status{NotStarted, Active, Won, Lost} {
		if string(text) == candidate.String() {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

// Game is the reveal engine. It owns the board and decides when the
// game is won or lost. Mines are placed on the first accepted reveal.
type Game struct {
	board         *Board
	policy        FirstClickPolicy
	allowQuestion bool
	r             Rand

	status    Status
	generated bool
	revealed  int
	detonated int
}

func NewGame(d Dimensions, policy FirstClickPolicy, allowQuestion bool, r Rand) *Game {
	g := &Game{
		board:         NewBoard(d),
		policy:        policy,
		allowQuestion: allowQuestion,
		r:             r,
	}
	g.Reset()
	return g
}

// Reset clears the board for a new game of the same dimensions.
func (g *Game) Reset() {
	g.board.reset()
	g.status = NotStarted
	g.generated = false
	g.revealed = 0
	g.detonated = -1
}

// Resize replaces the board with an empty one of the given dimensions.
func (g *Game) Resize(d Dimensions) {
	if g.board.dims != d {
		g.board = NewBoard(d)
	}
	g.Reset()
}

func (g *Game) SetFirstClickPolicy(p FirstClickPolicy) { g.policy = p }
func (g *Game) SetAllowQuestion(allow bool)            { g.allowQuestion = allow }

func (g *Game) Board() *Board      { return g.board }
func (g *Game) Status() Status     { return g.status }
func (g *Game) RevealedCount() int { return g.revealed }

// Playable reports whether the game still accepts moves.
func (g *Game) Playable() bool {
	return g.status == NotStarted || g.status == Active
}

func (g *Game) Detonated() (int, bool) {
	return g.detonated, g.detonated >= 0
}

func (g *Game) FlaggedCount() int {
	n := 0
	for _, c := range g.board.cells {
		if c.IsFlagged() {
			n++
		}
	}
	return n
}

func (g *Game) start(first int) {
	g.board.generate(first, g.policy, g.r)
	g.generated = true
	g.status = Active
}

// Reveal opens the cell the player targeted. It reports whether anything
// changed.
//
// panics [AssertionError]
func (g *Game) Reveal(i int) bool {
	if !g.Playable() || !g.board.Contains(i) {
		return false
	}
	c := g.board.cell(i)
	if c.IsRevealed() || c.IsFlagged() {
		return false
	}
	if !g.generated {
		g.start(i)
	}
	g.open(i)
	return true
}

// open reveals the targeted cell i and, for a zero cell, every cell
// reachable through other zero cells. Zero cells never border a mine, so
// the cascade leaves mines alone and only the target can detonate.
func (g *Game) open(i int) {
	c := g.board.cell(i)
	if !c.Reveal() {
		return
	}
	if c.IsMine() {
		g.detonate(i)
		return
	}
	g.revealed++

	todo := make([]int, 0, 16)
	if c.IsZero() {
		todo = append(todo, i)
	}
	for len(todo) > 0 {
		k := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		for _, j := range g.board.neighbors[k] {
			n := g.board.cell(j)
			if n.IsMine() || !n.Reveal() {
				continue
			}
			g.revealed++
			if n.IsZero() {
				todo = append(todo, j)
			}
		}
	}

	g.checkWin()
}

func (g *Game) detonate(i int) {
	g.detonated = i
	for _, m := range g.board.mines {
		g.board.cell(m).Reveal()
	}
	g.status = Lost
	Log.WithField("index", i).Debug("mine detonated")
}

func (g *Game) checkWin() {
	if g.revealed+len(g.board.mines) != len(g.board.cells) {
		return
	}
	for _, m := range g.board.mines {
		g.board.cell(m).Display = Flagged
	}
	g.status = Won
}

// Chord reveals every unflagged neighbour of a revealed number once the
// player has placed as many flags around it as there are mines. The
// flags do not have to be on the right cells.
func (g *Game) Chord(i int) bool {
	if !g.Playable() || !g.board.Contains(i) {
		return false
	}
	c := g.board.cell(i)
	if !c.IsRevealed() || c.IsMine() {
		return false
	}
	flags, mines := 0, 0
	for _, j := range g.board.neighbors[i] {
		n := g.board.cells[j]
		if n.IsFlagged() {
			flags++
		}
		if n.IsMine() {
			mines++
		}
	}
	if flags != mines {
		return false
	}
	changed := false
	for _, j := range g.board.neighbors[i] {
		if !g.Playable() {
			break
		}
		n := g.board.cells[j]
		if n.IsRevealed() || n.IsFlagged() {
			continue
		}
		g.open(j)
		changed = true
	}
	return changed
}

// ToggleMark cycles the flag/question mark on a hidden cell.
func (g *Game) ToggleMark(i int) bool {
	if !g.Playable() || !g.board.Contains(i) {
		return false
	}
	c := g.board.cell(i)
	if c.IsRevealed() {
		return false
	}
	c.CycleMark(g.allowQuestion)
	return true
}

// Forfeit ends a game in progress as lost and shows every mine.
func (g *Game) Forfeit() bool {
	if g.status != Active {
		return false
	}
	for _, m := range g.board.mines {
		g.board.cell(m).Reveal()
	}
	g.status = Lost
	return true
}

func (g *Game) Token(i int) Token {
	c := g.board.cells[i]
	switch c.Display {
	case Flagged:
		if g.status == Lost && !c.IsMine() {
			return TokenWrongFlag
		}
		return TokenFlag
	case Questioned:
		return TokenQuestion
	case Revealed:
		if !c.IsMine() {
			return Token(c.Value)
		}
		if i == g.detonated {
			return TokenExploded
		}
		return TokenMine
	default:
		return TokenBlank
	}
}

func (g *Game) Grid() Grid {
	grid := make(Grid, len(g.board.cells))
	for i := range grid {
		grid[i] = g.Token(i)
	}
	return grid
}
