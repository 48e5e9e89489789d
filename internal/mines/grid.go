package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// Token is what the presentation layer draws for a cell. Tokens travel
// as their one-character glyph:
//
//   - "." and "1" to "8" mean the cell is revealed with that many mines
//     around it.
//   - "F" means the cell is flagged.
//   - "#" means the cell is still hidden.
//   - "?" means the cell is marked with a question mark.
//   - "*" means a mine shown after the game was lost.
//   - "X" means the mine the player hit.
//   - "x" means a flag the player put on a safe cell, shown after a loss.
type Token int8

const (
	TokenQuestion  Token = -3
	TokenBlank     Token = -2
	TokenFlag      Token = -1
	TokenEmpty     Token = 0
	TokenMine      Token = 64
	TokenExploded  Token = 65
	TokenWrongFlag Token = 66
)

func (t Token) String() string {
	switch {
	case t == TokenQuestion:
		return "?"
	case t == TokenBlank:
		return "#"
	case t == TokenFlag:
		return "F"
	case t == TokenEmpty:
		return "."
	case 1 <= t && t <= 8:
		return strconv.Itoa(int(t))
	case t == TokenMine:
		return "*"
	case t == TokenExploded:
		return "X"
	case t == TokenWrongFlag:
		return "x"
	default:
		return "!"
	}
}

// [Token] implements [encoding.TextMarshaler]
func (t Token) MarshalText() ([]byte, error) {
	if t.String() == "!" {
		return nil, fmt.Errorf("invalid token %d", int8(t))
	}
	return []byte(t.String()), nil
}

// [Token] implements [encoding.TextUnmarshaler]
func (t *Token) UnmarshalText(text []byte) error {
	switch s := string(text); s {
	case "?":
		*t = TokenQuestion
	case "#":
		*t = TokenBlank
	case "F":
		*t = TokenFlag
	case ".":
		*t = TokenEmpty
	case "*":
		*t = TokenMine
	case "X":
		*t = TokenExploded
	case "x":
		*t = TokenWrongFlag
	default:
		if len(s) != 1 || s[0] < '1' || s[0] > '8' {
			return fmt.Errorf("unknown token %q", s)
		}
		*t = Token(s[0] - '0')
	}
	return nil
}

type Grid []Token

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			fmt.Fprint(&b, g[y*width+x].String())
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
