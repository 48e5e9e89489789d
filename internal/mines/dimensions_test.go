package mines

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		width, height, m int
		want             Dimensions
	}{
		{"beginner", 9, 9, 10, Dimensions{9, 9, 10}},
		{"over max", 100, 100, 1000, Dimensions{MaxWidth, MaxHeight, MaxMines}},
		{"only width over", 33, 16, 99, Dimensions{MaxWidth, 16, 99}},
		{"zero size", 0, 0, 5, Dimensions{1, 1, 0}},
		{"negative", -4, 5, -3, Dimensions{1, 5, 0}},
		{"full of mines", 3, 3, 9, Dimensions{3, 3, 8}},
		{"no mines", 4, 4, 0, Dimensions{4, 4, 0}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := NewDimensions(test.width, test.height, test.m)
			assert.Equal(t, test.want, got)
			assert.Less(t, got.MineCount, got.Cells())
		})
	}
}

func TestNewDimensionsClampsToMaxima(t *testing.T) {
	t.Parallel()

	for w := MaxWidth + 1; w < MaxWidth+40; w += 7 {
		for h := MaxHeight + 1; h < MaxHeight+40; h += 5 {
			for m := MaxMines + 1; m < MaxMines+2000; m += 333 {
				d := NewDimensions(w, h, m)
				require.Equal(t, Dimensions{MaxWidth, MaxHeight, MaxMines}, d,
					"NewDimensions(%d, %d, %d)", w, h, m)
			}
		}
	}
}

func TestDifficultyDimensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Dimensions{9, 9, 10}, Preset(Beginner).Dimensions())
	assert.Equal(t, Dimensions{16, 16, 40}, Preset(Intermediate).Dimensions())
	assert.Equal(t, Dimensions{30, 16, 99}, Preset(Expert).Dimensions())

	custom := CustomDifficulty(Dimensions{Width: 12, Height: 7, MineCount: 20})
	assert.Equal(t, Custom, custom.Level)
	assert.Equal(t, Dimensions{12, 7, 20}, custom.Dimensions())

	clamped := CustomDifficulty(Dimensions{Width: 64, Height: 64, MineCount: 4096})
	assert.Equal(t, Dimensions{MaxWidth, MaxHeight, MaxMines}, clamped.Dimensions())
}

func TestParseDifficulty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{in: "beginner", want: Preset(Beginner)},
		{in: "Intermediate", want: Preset(Intermediate)},
		{in: "EXPERT", want: Preset(Expert)},
		{in: "10x12/20", want: CustomDifficulty(Dimensions{10, 12, 20})},
		{in: "40x40/2000", want: CustomDifficulty(Dimensions{MaxWidth, MaxHeight, MaxMines})},
		{in: "custom", wantErr: true},
		{in: "10x12", wantErr: true},
		{in: "hard", wantErr: true},
		{in: "9x9/10junk", wantErr: true},
		{in: "9x9/10/4", wantErr: true},
		{in: "9x9x9/10", wantErr: true},
		{in: " 9x9/10", wantErr: true},
		{in: "9X9/10", want: CustomDifficulty(Dimensions{9, 9, 10})},
	}

	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			got, err := ParseDifficulty(test.in)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestDimensionsStringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, d := range []Dimensions{{9, 9, 10}, {30, 16, 99}, {1, 2, 1}, {32, 32, 512}} {
		t.Run(fmt.Sprint(d), func(t *testing.T) {
			got, err := ParseDimensions(d.String())
			require.NoError(t, err)
			assert.Equal(t, d, got)
		})
	}
}

func TestParseSettingNames(t *testing.T) {
	t.Parallel()

	for _, c := range []ChordSetting{LeftClickChord, BothButtonsChord, NoChord} {
		got, err := ParseChordSetting(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	for _, p := range []FirstClickPolicy{AnyFirstClick, SafeFirstClick, ZeroFirstClick} {
		got, err := ParseFirstClickPolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := ParseChordSetting("middle")
	assert.Error(t, err)
	_, err = ParseFirstClickPolicy("lucky")
	assert.Error(t, err)
}
