package mines

import (
	"strconv"
	"strings"
)

type Button int8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonOther
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	default:
		return "other"
	}
}

// ParseButton accepts "left"/"right" or a DOM MouseEvent.button code
// (0 and 2). Anything else is [ButtonOther].
func ParseButton(s string) Button {
	switch strings.ToLower(s) {
	case "left", "l":
		return ButtonLeft
	case "right", "r":
		return ButtonRight
	}
	if code, err := strconv.Atoi(s); err == nil {
		switch code {
		case 0:
			return ButtonLeft
		case 2:
			return ButtonRight
		}
	}
	return ButtonOther
}

// Input tracks which pointer buttons are held down.
type Input int8

const (
	InputNeither Input = iota
	InputLeft
	InputRight
	InputBoth
	// InputAfterBoth follows the release of one button of a chord. Both
	// buttons have to come up before a single click counts again.
	InputAfterBoth
)

func (s Input) String() string {
	switch s {
	case InputNeither:
		return "neither"
	case InputLeft:
		return "left"
	case InputRight:
		return "right"
	case InputBoth:
		return "both"
	case InputAfterBoth:
		return "after_both"
	default:
		return "unknown"
	}
}

func (s Input) Press(b Button) Input {
	if b == ButtonOther {
		return s
	}
	switch s {
	case InputNeither:
		if b == ButtonLeft {
			return InputLeft
		}
		return InputRight
	case InputLeft:
		if b == ButtonRight {
			return InputBoth
		}
		return InputLeft
	case InputRight:
		if b == ButtonLeft {
			return InputBoth
		}
		return InputRight
	default:
		return InputBoth
	}
}

func (s Input) Release(b Button) Input {
	if b == ButtonOther {
		return s
	}
	switch s {
	case InputLeft:
		if b == ButtonLeft {
			return InputNeither
		}
		return InputLeft
	case InputRight:
		if b == ButtonRight {
			return InputNeither
		}
		return InputRight
	case InputBoth:
		return InputAfterBoth
	default:
		return InputNeither
	}
}

// IsChording reports whether releasing in state s over a cell should
// chord rather than reveal.
func (s Input) IsChording(chord ChordSetting, targetRevealed bool) bool {
	switch s {
	case InputBoth:
		return true
	case InputLeft:
		return chord == LeftClickChord && targetRevealed
	default:
		return false
	}
}
