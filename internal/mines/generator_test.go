package mines

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkBoard(t *testing.T, b *Board, d Dimensions) {
	t.Helper()

	mines := b.Mines()
	require.Len(t, mines, d.MineCount)
	assert.True(t, slices.IsSorted(mines), "mine indices are sorted")
	assert.Len(t, slices.Compact(slices.Clone(mines)), d.MineCount, "mine indices are distinct")

	for i := range b.Len() {
		c := b.Cell(i)
		assert.Equal(t, Hidden, c.Display)
		if slices.Contains(mines, i) {
			assert.True(t, c.IsMine(), "cell %d", i)
			continue
		}
		var want Value
		for _, j := range b.Neighbors(i) {
			if b.Cell(j).IsMine() {
				want++
			}
		}
		assert.Equal(t, want, c.Value, "cell %d", i)
	}
}

func TestGenerate(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	tests := []struct {
		name string
		dims Dimensions
	}{
		{name: "9x9(10)", dims: NewDimensions(9, 9, 10)},
		{name: "9x9(35)", dims: NewDimensions(9, 9, 35)},
		{name: "16x16(40)", dims: NewDimensions(16, 16, 40)},
		{name: "30x16(99)", dims: NewDimensions(30, 16, 99)},
		{name: "30x16(170)", dims: NewDimensions(30, 16, 170)},
		{name: "32x32(512)", dims: NewDimensions(32, 32, 512)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := newRand(1)
			for first := range test.dims.Cells() {
				b := Generate(test.dims, first, ZeroFirstClick, r)
				checkBoard(t, b, test.dims)

				assert.Equal(t, Value(0), b.Cell(first).Value, "first click %d", first)
				for _, j := range b.Neighbors(first) {
					assert.False(t, b.Cell(j).IsMine(), "first click %d, neighbour %d", first, j)
				}
			}
		})
	}
}

func TestGenerateSafeFirstClick(t *testing.T) {
	t.Parallel()

	d := NewDimensions(9, 9, 40)
	r := newRand(7)
	for first := range d.Cells() {
		b := Generate(d, first, SafeFirstClick, r)
		checkBoard(t, b, d)
		assert.False(t, b.Cell(first).IsMine(), "first click %d", first)
	}
}

func TestGenerateAnyFirstClickMayBeMine(t *testing.T) {
	t.Parallel()

	d := Dimensions{Width: 3, Height: 3, MineCount: 2}
	b := Generate(d, 4, AnyFirstClick, layout(4, 0))
	checkBoard(t, b, d)
	assert.True(t, b.Cell(4).IsMine())
	assert.Equal(t, []int{0, 4}, b.Mines())
}

func TestGenerateRejectsFirstClickRegion(t *testing.T) {
	t.Parallel()

	/* 3x3, one mine, first click in the top left corner */
	d := Dimensions{Width: 3, Height: 3, MineCount: 1}
	for seed := range uint64(50) {
		b := Generate(d, 0, ZeroFirstClick, newRand(seed))
		checkBoard(t, b, d)
		assert.NotContains(t, []int{0, 1, 3, 4}, b.Mines()[0])
	}

	/* the rejected picks are skipped, the first eligible one wins */
	b := Generate(d, 0, ZeroFirstClick, layout(0, 1, 3, 4, 4, 7))
	assert.Equal(t, []int{7}, b.Mines())
}

func TestGenerateZeroFallsBackToSafe(t *testing.T) {
	t.Parallel()

	/* every cell but the centre has to be a mine */
	d := NewDimensions(3, 3, 8)
	b := Generate(d, 4, ZeroFirstClick, newRand(3))
	checkBoard(t, b, d)
	assert.False(t, b.Cell(4).IsMine())
	assert.Equal(t, Value(8), b.Cell(4).Value)
}

func TestGenerateTooManyMines(t *testing.T) {
	t.Parallel()

	d := Dimensions{Width: 2, Height: 2, MineCount: 4}
	assert.PanicsWithValue(t, AssertionError{"cannot place 4 mines on 4 cells"}, func() {
		Generate(d, 0, AnyFirstClick, newRand(1))
	})

	err := func() (err error) {
		defer Recover(&err)
		Generate(d, 0, AnyFirstClick, newRand(1))
		return nil
	}()
	assert.EqualError(t, err, "cannot place 4 mines on 4 cells")
}

func TestBoardNeighbors(t *testing.T) {
	t.Parallel()

	b := NewBoard(Dimensions{Width: 3, Height: 3})
	assert.ElementsMatch(t, []int{1, 3, 4}, b.Neighbors(0))
	assert.ElementsMatch(t, []int{0, 2, 3, 4, 5}, b.Neighbors(1))
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 5, 6, 7, 8}, b.Neighbors(4))
	assert.ElementsMatch(t, []int{4, 5, 7}, b.Neighbors(8))

	row := NewBoard(Dimensions{Width: 4, Height: 1})
	assert.ElementsMatch(t, []int{1}, row.Neighbors(0))
	assert.ElementsMatch(t, []int{0, 2}, row.Neighbors(1))

	single := NewBoard(Dimensions{Width: 1, Height: 1})
	assert.Empty(t, single.Neighbors(0))

	x, y := b.Point(5)
	assert.Equal(t, 5, b.Index(x, y))
	assert.True(t, b.ValidatePoint(2, 2))
	assert.False(t, b.ValidatePoint(3, 0))
}

func TestBoardString(t *testing.T) {
	t.Parallel()

	b := Generate(Dimensions{Width: 3, Height: 2, MineCount: 1}, 0, AnyFirstClick, layout(5))
	assert.Equal(t, ".11\n.1*\n", b.String())
}
