package mines

// Value is either [Mine] or the number of mines among the eight
// neighbours of a cell (0 to 8).
type Value int8

const Mine Value = -1

type Display uint8

const (
	Hidden Display = iota
	Flagged
	Questioned
	Revealed
)

func (d Display) String() string {
	switch d {
	case Hidden:
		return "hidden"
	case Flagged:
		return "flagged"
	case Questioned:
		return "questioned"
	case Revealed:
		return "revealed"
	default:
		return "unknown"
	}
}

type Cell struct {
	Value   Value
	Display Display
}

func (c *Cell) Reset() {
	c.Value = 0
	c.Display = Hidden
}

// Reveal reports whether the cell changed. Flagged cells have to be
// unmarked before they can be revealed.
func (c *Cell) Reveal() bool {
	switch c.Display {
	case Hidden, Questioned:
		c.Display = Revealed
		return true
	default:
		return false
	}
}

// CycleMark walks Hidden -> Flagged -> Questioned -> Hidden, skipping
// Questioned unless allowQuestioned is set. Revealed cells stay put.
func (c *Cell) CycleMark(allowQuestioned bool) {
	switch c.Display {
	case Hidden:
		c.Display = Flagged
	case Flagged:
		if allowQuestioned {
			c.Display = Questioned
		} else {
			c.Display = Hidden
		}
	case Questioned:
		c.Display = Hidden
	}
}

func (c Cell) IsRevealed() bool { return c.Display == Revealed }
func (c Cell) IsFlagged() bool  { return c.Display == Flagged }
func (c Cell) IsMine() bool     { return c.Value == Mine }
func (c Cell) IsZero() bool     { return c.Value == 0 }
