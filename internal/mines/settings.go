package mines

import (
	"fmt"
	"strings"
)

type ChordSetting int8

const (
	// LeftClickChord also chords when a revealed number is clicked with
	// the left button alone.
	LeftClickChord ChordSetting = iota
	BothButtonsChord
	NoChord
)

var chordNames = [...]string{
	LeftClickChord:   "left",
	BothButtonsChord: "both",
	NoChord:          "disabled",
}

func (c ChordSetting) String() string {
	if 0 <= c && int(c) < len(chordNames) {
		return chordNames[c]
	}
	return fmt.Sprintf("ChordSetting(%d)", int8(c))
}

func ParseChordSetting(s string) (ChordSetting, error) {
	for c, name := range chordNames {
		if strings.EqualFold(s, name) {
			return ChordSetting(c), nil
		}
	}
	return LeftClickChord, fmt.Errorf("unknown chord setting %q", s)
}

// FirstClickPolicy restricts where mines may be placed relative to the
// first revealed cell.
type FirstClickPolicy int8

const (
	AnyFirstClick  FirstClickPolicy = iota // the clicked cell may be a mine
	SafeFirstClick                         // the clicked cell is never a mine
	ZeroFirstClick                         // the clicked cell and its neighbours are never mines
)

var firstClickNames = [...]string{
	AnyFirstClick:  "any",
	SafeFirstClick: "safe",
	ZeroFirstClick: "zero",
}

func (p FirstClickPolicy) String() string {
	if 0 <= p && int(p) < len(firstClickNames) {
		return firstClickNames[p]
	}
	return fmt.Sprintf("FirstClickPolicy(%d)", int8(p))
}

func ParseFirstClickPolicy(s string) (FirstClickPolicy, error) {
	for p, name := range firstClickNames {
		if strings.EqualFold(s, name) {
			return FirstClickPolicy(p), nil
		}
	}
	return ZeroFirstClick, fmt.Errorf("unknown first click policy %q", s)
}

type Settings struct {
	Difficulty    Difficulty
	Chord         ChordSetting
	FirstClick    FirstClickPolicy
	AllowQuestion bool
}

func DefaultSettings() Settings {
	return Settings{
		Difficulty:    Preset(Beginner),
		Chord:         LeftClickChord,
		FirstClick:    ZeroFirstClick,
		AllowQuestion: false,
	}
}

func (s Settings) Dimensions() Dimensions {
	return s.Difficulty.Dimensions()
}
