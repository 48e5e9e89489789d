package mines

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func click(s *Session, i int) {
	s.Press(i, ButtonLeft)
	s.Release(i, ButtonLeft)
}

func flag(s *Session, i int) {
	s.Press(i, ButtonRight)
	s.Release(i, ButtonRight)
}

func TestSessionLeftClickReveals(t *testing.T) {
	t.Parallel()

	s := NewSession(customSettings(3, 3, 8), layout(8))
	require.True(t, s.Press(4, ButtonLeft))
	p, ok := s.Pressed()
	assert.True(t, ok)
	assert.Equal(t, 4, p)
	assert.Equal(t, Nervous, s.Face())
	assert.Equal(t, NotStarted, s.Status(), "nothing happens until release")

	require.True(t, s.Release(4, ButtonLeft))
	assert.Equal(t, Active, s.Status())
	assert.Equal(t, Token(1), s.Token(4))
	assert.Equal(t, Happy, s.Face())
	_, ok = s.Pressed()
	assert.False(t, ok)
}

func TestSessionReleaseElsewhereAbandons(t *testing.T) {
	t.Parallel()

	s := NewSession(customSettings(3, 3, 8), layout(8))
	s.Press(4, ButtonLeft)
	s.Release(5, ButtonLeft)

	assert.Equal(t, NotStarted, s.Status())
	assert.Equal(t, TokenBlank, s.Token(4))
	assert.Equal(t, TokenBlank, s.Token(5))
	assert.Equal(t, InputNeither, s.Input())
}

func TestSessionRightPressFlags(t *testing.T) {
	t.Parallel()

	s := NewSession(customSettings(3, 3, 8), layout(8))
	require.True(t, s.Press(2, ButtonRight))
	assert.Equal(t, TokenFlag, s.Token(2))
	assert.Equal(t, 0, s.MinesRemaining())

	s.Release(2, ButtonRight)
	assert.Equal(t, TokenFlag, s.Token(2), "release does not toggle again")

	flag(s, 2)
	assert.Equal(t, TokenBlank, s.Token(2))
	assert.Equal(t, 1, s.MinesRemaining())
}

func TestSessionQuestionMarks(t *testing.T) {
	t.Parallel()

	settings := customSettings(3, 3, 8)
	settings.AllowQuestion = true
	s := NewSession(settings, layout(8))

	flag(s, 0)
	flag(s, 0)
	assert.Equal(t, TokenQuestion, s.Token(0))
	flag(s, 0)
	assert.Equal(t, TokenBlank, s.Token(0))
}

func TestSessionMinesRemainingFloor(t *testing.T) {
	t.Parallel()

	s := NewSession(DefaultSettings(), newRand(1))
	s.SetDifficulty(Preset(Expert))
	for i := range 250 {
		flag(s, i)
	}
	assert.Equal(t, MinMinesRemaining, s.MinesRemaining())
}

func TestSessionBothButtonsChord(t *testing.T) {
	t.Parallel()

	s := NewSession(customSettings(3, 3, 8), layout(8))
	click(s, 4)
	flag(s, 8)

	s.Press(4, ButtonLeft)
	s.Press(4, ButtonRight)
	assert.Equal(t, InputBoth, s.Input())
	for _, j := range []int{0, 1, 2, 3, 4, 5, 6, 7, 8} {
		assert.True(t, s.Highlighted(j), "cell %d", j)
	}

	require.True(t, s.Release(4, ButtonLeft))
	assert.Equal(t, InputAfterBoth, s.Input())
	assert.Equal(t, Won, s.Status())
	assert.Equal(t, Cool, s.Face())

	s.Release(4, ButtonRight)
	assert.Equal(t, InputNeither, s.Input())
}

func TestSessionAfterBothDoesNotClick(t *testing.T) {
	t.Parallel()

	s := NewSession(customSettings(4, 4, 15), layout(15))
	s.Press(0, ButtonLeft)
	s.Press(0, ButtonRight)
	s.Release(0, ButtonRight)
	assert.Equal(t, InputAfterBoth, s.Input())

	/* the left button is still down but lifting it must not reveal */
	s.Release(0, ButtonLeft)
	assert.Equal(t, InputNeither, s.Input())
	assert.Equal(t, NotStarted, s.Status())
	assert.Equal(t, TokenBlank, s.Token(0))
}

func TestSessionLeftClickChordSetting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		chord ChordSetting
		want  Status
	}{
		{LeftClickChord, Won},
		{BothButtonsChord, Active},
		{NoChord, Active},
	}

	for _, test := range tests {
		t.Run(test.chord.String(), func(t *testing.T) {
			settings := customSettings(3, 3, 8)
			settings.Chord = test.chord
			s := NewSession(settings, layout(8))
			click(s, 4)
			flag(s, 8)

			s.Press(4, ButtonLeft)
			assert.Equal(t, test.chord == LeftClickChord, s.Highlighted(0))
			s.Release(4, ButtonLeft)
			assert.Equal(t, test.want, s.Status())
		})
	}
}

func TestSessionNoChordIgnoresBothButtons(t *testing.T) {
	t.Parallel()

	settings := customSettings(3, 3, 8)
	settings.Chord = NoChord
	s := NewSession(settings, layout(8))
	click(s, 4)
	flag(s, 8)

	s.Press(4, ButtonLeft)
	s.Press(4, ButtonRight)
	assert.False(t, s.Highlighted(0))
	s.Release(4, ButtonRight)
	s.Release(4, ButtonLeft)

	assert.Equal(t, Active, s.Status())
	assert.Equal(t, TokenBlank, s.Token(0))
}

func TestSessionWrongChordLoses(t *testing.T) {
	t.Parallel()

	s := NewSession(customSettings(3, 3, 8), layout(8))
	click(s, 4)
	flag(s, 0)
	click(s, 4)

	assert.Equal(t, Lost, s.Status())
	assert.Equal(t, Dead, s.Face())
	assert.Equal(t, TokenExploded, s.Token(8))

	/* nothing changes until reset */
	grid := s.Grid()
	assert.False(t, s.Press(2, ButtonRight))
	click(s, 2)
	assert.Equal(t, grid, s.Grid())
}

func TestSessionTick(t *testing.T) {
	t.Parallel()

	s := NewSession(customSettings(3, 3, 8), layout(8))
	assert.False(t, s.Tick(), "clock waits for the first reveal")
	assert.Equal(t, 0, s.ElapsedSeconds())

	click(s, 4)
	for range MaxElapsedSeconds + 10 {
		s.Tick()
	}
	assert.Equal(t, MaxElapsedSeconds, s.ElapsedSeconds())

	s.Reset()
	click(s, 4)
	require.True(t, s.Tick())
	click(s, 8)
	assert.Equal(t, Lost, s.Status())
	assert.False(t, s.Tick())
	assert.Equal(t, 1, s.ElapsedSeconds())
}

func TestSessionReset(t *testing.T) {
	t.Parallel()

	s := NewSession(customSettings(3, 3, 8), layout(8))
	click(s, 4)
	flag(s, 0)
	s.Tick()
	s.Press(1, ButtonLeft)

	s.Reset()
	assert.Equal(t, NotStarted, s.Status())
	assert.Equal(t, 0, s.ElapsedSeconds())
	assert.Equal(t, 1, s.MinesRemaining())
	assert.Equal(t, InputNeither, s.Input())
	for _, tok := range s.Grid() {
		assert.Equal(t, TokenBlank, tok)
	}
}

func TestSessionSetDifficulty(t *testing.T) {
	t.Parallel()

	s := NewSession(DefaultSettings(), newRand(5))
	click(s, 40)
	require.NotEqual(t, NotStarted, s.Status())

	s.SetDifficulty(Preset(Intermediate))
	assert.Equal(t, NotStarted, s.Status())
	assert.Equal(t, Dimensions{16, 16, 40}, s.Dimensions())
	assert.Len(t, s.Grid(), 256)
	assert.Equal(t, 40, s.MinesRemaining())

	settings := s.Settings()
	settings.Chord = BothButtonsChord
	click(s, 0)
	s.SetSettings(settings)
	assert.NotEqual(t, NotStarted, s.Status(), "same dimensions keep the game")

	settings.Difficulty = CustomDifficulty(Dimensions{Width: 5, Height: 5, MineCount: 3})
	s.SetSettings(settings)
	assert.Equal(t, NotStarted, s.Status())
	assert.Equal(t, Dimensions{5, 5, 3}, s.Dimensions())
}

func TestSessionLeave(t *testing.T) {
	t.Parallel()

	s := NewSession(customSettings(3, 3, 8), layout(8))
	s.Press(4, ButtonLeft)
	require.True(t, s.Leave())
	assert.Equal(t, InputNeither, s.Input())
	assert.False(t, s.Highlighted(4))

	s.Release(4, ButtonLeft)
	assert.Equal(t, NotStarted, s.Status())
	assert.False(t, s.Leave())
}

func TestSessionSnapshot(t *testing.T) {
	t.Parallel()

	s := NewSession(customSettings(3, 3, 8), layout(8))
	click(s, 4)
	s.Press(4, ButtonLeft)

	v := s.Snapshot()
	assert.Equal(t, "3x3/1", v.Difficulty)
	require.NotNil(t, v.Pressed)
	assert.Equal(t, 4, *v.Pressed)
	assert.Len(t, v.Highlighted, 9, "left click chord on a revealed number")

	b, err := json.Marshal(v)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "active", decoded["status"])
	assert.Equal(t, "nervous", decoded["face"])
	assert.Equal(t, "left", decoded["chord"])
	assert.Equal(t, "any", decoded["first_click"])
	assert.Equal(t,
		[]any{"#", "#", "#", "#", "1", "#", "#", "#", "#"},
		decoded["grid"],
	)
}
