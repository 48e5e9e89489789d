package mines

import "slices"

// Board holds cells in row-major order together with the precomputed
// neighbour set of every index. Cells are only ever addressed by index.
type Board struct {
	dims      Dimensions
	cells     []Cell
	neighbors [][]int
	mines     []int
}

// NewBoard returns a board with no mines placed yet.
func NewBoard(d Dimensions) *Board {
	n := d.Cells()
	b := &Board{
		dims:      d,
		cells:     make([]Cell, n),
		neighbors: make([][]int, n),
		mines:     make([]int, 0, d.MineCount),
	}
	for i := range n {
		b.neighbors[i] = neighborsOf(d.Width, d.Height, i)
	}
	return b
}

func neighborsOf(w, h, i int) []int {
	x, y := i%w, i/w
	ns := make([]int, 0, 8)
	for dy := -1; dy <= +1; dy++ {
		for dx := -1; dx <= +1; dx++ {
			xx, yy := x+dx, y+dy
			if (dx != 0 || dy != 0) &&
				0 <= xx && xx < w &&
				0 <= yy && yy < h {
				ns = append(ns, yy*w+xx)
			}
		}
	}
	return ns
}

func (b *Board) Dimensions() Dimensions { return b.dims }
func (b *Board) Len() int               { return len(b.cells) }

func (b *Board) Contains(i int) bool {
	return 0 <= i && i < len(b.cells)
}

func (b *Board) Cell(i int) Cell {
	return b.cells[i]
}

func (b *Board) cell(i int) *Cell {
	return &b.cells[i]
}

func (b *Board) Neighbors(i int) []int {
	return slices.Clone(b.neighbors[i])
}

func (b *Board) IsNeighbor(i, j int) bool {
	return slices.Contains(b.neighbors[i], j)
}

// Mines returns the mine indices in ascending order. It is empty until
// the board has been generated.
func (b *Board) Mines() []int {
	return slices.Clone(b.mines)
}

func (b *Board) Index(x, y int) int {
	return y*b.dims.Width + x
}

func (b *Board) Point(i int) (x, y int) {
	return i % b.dims.Width, i / b.dims.Width
}

func (b *Board) ValidatePoint(x, y int) bool {
	return 0 <= x && x < b.dims.Width && 0 <= y && y < b.dims.Height
}

func (b *Board) reset() {
	for i := range b.cells {
		b.cells[i].Reset()
	}
	b.mines = b.mines[:0]
}

// place fixes cell values for the given mine layout. Display states are
// left alone so that marks made before the first reveal survive.
func (b *Board) place(isMine []bool) {
	b.mines = b.mines[:0]
	for i := range b.cells {
		if isMine[i] {
			b.cells[i].Value = Mine
			b.mines = append(b.mines, i)
			continue
		}
		var v Value
		for _, j := range b.neighbors[i] {
			if isMine[j] {
				v++
			}
		}
		b.cells[i].Value = v
	}
}

// String renders the actual layout, for debugging.
func (b *Board) String() string {
	grid := make(Grid, len(b.cells))
	for i, c := range b.cells {
		if c.IsMine() {
			grid[i] = TokenMine
		} else {
			grid[i] = Token(c.Value)
		}
	}
	return grid.ToString(b.dims.Width)
}
