package mines

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	MaxWidth  = 32
	MaxHeight = 32
	MaxMines  = 512
)

// Dimensions is a validated board size. Use [NewDimensions] to build one;
// out-of-range values are clamped, never rejected.
type Dimensions struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	MineCount int `json:"mine_count"`
}

func NewDimensions(width, height, mineCount int) Dimensions {
	width = min(max(width, 1), MaxWidth)
	height = min(max(height, 1), MaxHeight)
	/* there must be room for at least one safe cell */
	mineCount = min(max(mineCount, 0), MaxMines, width*height-1)
	return Dimensions{Width: width, Height: height, MineCount: mineCount}
}

func (d Dimensions) Cells() int {
	return d.Width * d.Height
}

func (d Dimensions) Unpack() (w int, h int, mc int) {
	return d.Width, d.Height, d.MineCount
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d/%d", d.Width, d.Height, d.MineCount)
}

// ParseDimensions reads the "WxH/M" form produced by [Dimensions.String].
// The result is clamped like any other constructed value.
func ParseDimensions(s string) (Dimensions, error) {
	invalid := func(err error) (Dimensions, error) {
		return Dimensions{}, fmt.Errorf(`invalid dimensions (s = "%s"): %w`, s, err)
	}
	w, rest, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return invalid(errors.New("missing 'x'"))
	}
	h, m, ok := strings.Cut(rest, "/")
	if !ok {
		return invalid(errors.New("missing '/'"))
	}
	var fields [3]int
	for i, f := range [...]string{w, h, m} {
		n, err := strconv.Atoi(f)
		if err != nil {
			return invalid(err)
		}
		fields[i] = n
	}
	return NewDimensions(fields[0], fields[1], fields[2]), nil
}

type Level int8

const (
	Beginner Level = iota
	Intermediate
	Expert
	Custom
)

var levelNames = [...]string{
	Beginner:     "beginner",
	Intermediate: "intermediate",
	Expert:       "expert",
	Custom:       "custom",
}

func (l Level) String() string {
	if 0 <= l && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", int8(l))
}

func ParseLevel(s string) (Level, error) {
	for l, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(l), nil
		}
	}
	return Beginner, fmt.Errorf("unknown level %q", s)
}

// Difficulty is either one of the named presets or a custom level
// carrying its own dimensions.
type Difficulty struct {
	Level  Level
	custom Dimensions
}

func Preset(l Level) Difficulty {
	return Difficulty{Level: l}
}

func CustomDifficulty(d Dimensions) Difficulty {
	return Difficulty{Level: Custom, custom: NewDimensions(d.Unpack())}
}

func (d Difficulty) Dimensions() Dimensions {
	switch d.Level {
	case Intermediate:
		return NewDimensions(16, 16, 40)
	case Expert:
		return NewDimensions(30, 16, 99)
	case Custom:
		return d.custom
	default:
		return NewDimensions(9, 9, 10)
	}
}

func (d Difficulty) String() string {
	if d.Level == Custom {
		return d.custom.String()
	}
	return d.Level.String()
}

// ParseDifficulty accepts a preset name or custom dimensions in "WxH/M" form.
func ParseDifficulty(s string) (Difficulty, error) {
	if l, err := ParseLevel(s); err == nil && l != Custom {
		return Preset(l), nil
	}
	dims, err := ParseDimensions(s)
	if err != nil {
		return Difficulty{}, fmt.Errorf("invalid difficulty %q: %w", s, err)
	}
	return CustomDifficulty(dims), nil
}
